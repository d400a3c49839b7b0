// Command buyer-client drives the buyer gateway from the command line,
// one subcommand per operation.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/ankurvarma7/online-marketplace/internal/protocol"
	"github.com/ankurvarma7/online-marketplace/internal/transport"
)

const usage = `usage: buyer-client <command> [flags]

commands:
  create-account   --name --password
  login            --name --password
  logout           --session-id
  search           --session-id [--category] [--keywords]
  get-item         --session-id --item-id
  add-to-cart      --session-id --item-id --quantity
  remove-from-cart --session-id --item-id --quantity
  save-cart        --session-id
  clear-cart       --session-id
  display-cart     --session-id
  feedback         --session-id --item-id [--thumbs-up|--thumbs-up=false]
  seller-rating    --session-id --seller-id
  purchases        --session-id
`

func serverAddr() string {
	if addr := os.Getenv("BUYER_SERVER_ADDR"); addr != "" {
		return addr
	}
	return "127.0.0.1:8083"
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var req *protocol.Message
	switch os.Args[1] {
	case "create-account", "login":
		fs := pflag.NewFlagSet(os.Args[1], pflag.ExitOnError)
		name := fs.String("name", "", "account name")
		password := fs.String("password", "", "account password")
		parse(fs)
		op := protocol.BuyerCreateAccount
		if os.Args[1] == "login" {
			op = protocol.BuyerLogin
		}
		req = protocol.MustMessage(op,
			protocol.CredentialsRequest{Name: *name, Password: *password})

	case "logout", "save-cart", "clear-cart", "display-cart", "purchases":
		fs := pflag.NewFlagSet(os.Args[1], pflag.ExitOnError)
		session := fs.String("session-id", "", "session id")
		parse(fs)
		op := map[string]protocol.MessageType{
			"logout":       protocol.BuyerLogout,
			"save-cart":    protocol.BuyerSaveCart,
			"clear-cart":   protocol.BuyerClearCart,
			"display-cart": protocol.BuyerDisplayCart,
			"purchases":    protocol.BuyerGetPurchases,
		}[os.Args[1]]
		req = protocol.MustMessage(op,
			protocol.SessionIDRequest{SessionID: parseUUID(*session)})

	case "search":
		fs := pflag.NewFlagSet("search", pflag.ExitOnError)
		session := fs.String("session-id", "", "session id")
		category := fs.Int32("category", -1, "category code, -1 for any")
		keywords := fs.StringSlice("keywords", nil, "required keywords")
		parse(fs)
		var cat *int32
		if *category >= 0 {
			cat = category
		}
		req = protocol.MustMessage(protocol.BuyerSearchItems, protocol.BuyerSearchRequest{
			SessionID: parseUUID(*session),
			Category:  cat,
			Keywords:  *keywords,
		})

	case "get-item":
		fs := pflag.NewFlagSet("get-item", pflag.ExitOnError)
		session := fs.String("session-id", "", "session id")
		itemID := fs.String("item-id", "", "item id")
		parse(fs)
		req = protocol.MustMessage(protocol.BuyerGetItem, protocol.BuyerItemRequest{
			SessionID: parseUUID(*session),
			ItemID:    parseUUID(*itemID),
		})

	case "add-to-cart", "remove-from-cart":
		fs := pflag.NewFlagSet(os.Args[1], pflag.ExitOnError)
		session := fs.String("session-id", "", "session id")
		itemID := fs.String("item-id", "", "item id")
		quantity := fs.Int32("quantity", 1, "units")
		parse(fs)
		op := protocol.BuyerAddItemToCart
		if os.Args[1] == "remove-from-cart" {
			op = protocol.BuyerRemoveItemFromCart
		}
		req = protocol.MustMessage(op, protocol.BuyerCartLineRequest{
			SessionID: parseUUID(*session),
			ItemID:    parseUUID(*itemID),
			Quantity:  *quantity,
		})

	case "feedback":
		fs := pflag.NewFlagSet("feedback", pflag.ExitOnError)
		session := fs.String("session-id", "", "session id")
		itemID := fs.String("item-id", "", "item id")
		thumbsUp := fs.Bool("thumbs-up", true, "thumbs up (false for thumbs down)")
		parse(fs)
		req = protocol.MustMessage(protocol.BuyerProvideFeedback, protocol.ProvideFeedbackRequest{
			SessionID: parseUUID(*session),
			ItemID:    parseUUID(*itemID),
			ThumbsUp:  *thumbsUp,
		})

	case "seller-rating":
		fs := pflag.NewFlagSet("seller-rating", pflag.ExitOnError)
		session := fs.String("session-id", "", "session id")
		sellerID := fs.String("seller-id", "", "seller id")
		parse(fs)
		req = protocol.MustMessage(protocol.BuyerGetSellerRating, protocol.BuyerSellerRatingRequest{
			SessionID: parseUUID(*session),
			SellerID:  parseUUID(*sellerID),
		})

	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	resp, err := transport.Call(context.Background(), serverAddr(), req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "request failed: %v\n", err)
		os.Exit(1)
	}
	printResponse(resp)
}

func parse(fs *pflag.FlagSet) {
	_ = fs.Parse(os.Args[2:])
}

func parseUUID(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid id %q: %v\n", s, err)
		os.Exit(2)
	}
	return id
}

func printResponse(resp *protocol.Message) {
	switch resp.Type {
	case protocol.TypeError:
		fmt.Fprintf(os.Stderr, "error: %s\n", resp.ErrorText())
		os.Exit(1)
	case protocol.BuyerAccountCreated:
		var p protocol.AccountCreatedPayload
		must(resp.Decode(&p))
		fmt.Printf("account created: %s\n", p.AccountID)
	case protocol.BuyerLoggedIn:
		var p protocol.LoggedInPayload
		must(resp.Decode(&p))
		fmt.Printf("logged in, session: %s\n", p.SessionID)
	case protocol.BuyerLoggedOut:
		fmt.Println("logged out")
	case protocol.BuyerItems:
		var p protocol.ItemsPayload
		must(resp.Decode(&p))
		for _, item := range p.Items {
			fmt.Printf("%s  %-20s  cat=%d  $%.2f  qty=%d  %s  [%s]\n",
				item.ItemID, item.Name, item.Category, item.SalePrice,
				item.Quantity, item.Condition, strings.Join(item.Keywords, ","))
		}
	case protocol.BuyerItem:
		var p protocol.ItemPayload
		must(resp.Decode(&p))
		if p.Item == nil {
			fmt.Println("item not found")
			return
		}
		item := p.Item
		fmt.Printf("%s  %s  cat=%d  $%.2f  qty=%d  %s  [%s]  %d up / %d down\n",
			item.ItemID, item.Name, item.Category, item.SalePrice, item.Quantity,
			item.Condition, strings.Join(item.Keywords, ","),
			item.Feedback.ThumbsUp, item.Feedback.ThumbsDown)
	case protocol.BuyerItemAdded:
		fmt.Println("added to cart")
	case protocol.BuyerItemRemoved:
		fmt.Println("removed from cart")
	case protocol.BuyerCartSaved:
		fmt.Println("cart saved")
	case protocol.BuyerCartCleared:
		fmt.Println("cart cleared")
	case protocol.BuyerCart:
		var p protocol.CartPayload
		must(resp.Decode(&p))
		if len(p.Items) == 0 {
			fmt.Println("cart is empty")
			return
		}
		for _, line := range p.Items {
			fmt.Printf("%s  x%d\n", line.ItemID, line.Quantity)
		}
	case protocol.BuyerFeedbackRecorded:
		fmt.Println("feedback recorded")
	case protocol.BuyerSellerRating:
		var p protocol.SellerRatingPayload
		must(resp.Decode(&p))
		fmt.Printf("rating: %d up / %d down\n", p.Feedback.ThumbsUp, p.Feedback.ThumbsDown)
	case protocol.BuyerPurchases:
		var p protocol.PurchaseHistoryPayload
		must(resp.Decode(&p))
		if len(p.ItemIDs) == 0 {
			fmt.Println("no purchases")
			return
		}
		for _, id := range p.ItemIDs {
			fmt.Println(id)
		}
	default:
		fmt.Fprintf(os.Stderr, "unexpected response: %s\n", resp.Type)
		os.Exit(1)
	}
}

func must(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "bad response: %v\n", err)
		os.Exit(1)
	}
}
