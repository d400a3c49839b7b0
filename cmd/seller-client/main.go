// Command seller-client drives the seller gateway from the command line,
// one subcommand per operation.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/ankurvarma7/online-marketplace/internal/domain"
	"github.com/ankurvarma7/online-marketplace/internal/protocol"
	"github.com/ankurvarma7/online-marketplace/internal/transport"
)

const usage = `usage: seller-client <command> [flags]

commands:
  create-account   --name --password
  login            --name --password
  logout           --session-id
  get-rating       --session-id
  register-item    --session-id --name --category --keywords --condition --price --quantity
  change-price     --session-id --item-id --new-price
  update-units     --session-id --item-id --quantity
  display-items    --session-id
`

func serverAddr() string {
	if addr := os.Getenv("SELLER_SERVER_ADDR"); addr != "" {
		return addr
	}
	return "127.0.0.1:8082"
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
		op := protocol.SellerCreateAccount
		if os.Args[1] == "login" {
			op = protocol.SellerLogin
		}
		req = protocol.MustMessage(op,
			protocol.CredentialsRequest{Name: *name, Password: *password})

	case "logout", "get-rating", "display-items":
		fs := pflag.NewFlagSet(os.Args[1], pflag.ExitOnError)
		session := fs.String("session-id", "", "session id")
		parse(fs)
		op := map[string]protocol.MessageType{
			"logout":        protocol.SellerLogout,
			"get-rating":    protocol.SellerGetRating,
			"display-items": protocol.SellerDisplayItems,
		}[os.Args[1]]
		req = protocol.MustMessage(op,
			protocol.SessionIDRequest{SessionID: parseUUID(*session)})

	case "register-item":
		fs := pflag.NewFlagSet("register-item", pflag.ExitOnError)
		session := fs.String("session-id", "", "session id")
		name := fs.String("name", "", "item name")
		category := fs.Int32("category", 0, "category code")
		keywords := fs.StringSlice("keywords", nil, "up to 5 keywords, 8 chars each")
		condition := fs.String("condition", "New", "New or Used")
		price := fs.Float64("price", 0, "sale price")
		quantity := fs.Int32("quantity", 0, "units for sale")
		parse(fs)
		req = protocol.MustMessage(protocol.SellerRegisterItem, protocol.RegisterItemRequest{
			SessionID: parseUUID(*session),
			Name:      *name,
			Category:  *category,
			Keywords:  capKeywords(*keywords),
			Condition: domain.Condition(*condition),
			SalePrice: *price,
			Quantity:  *quantity,
		})

	case "change-price":
		fs := pflag.NewFlagSet("change-price", pflag.ExitOnError)
		session := fs.String("session-id", "", "session id")
		itemID := fs.String("item-id", "", "item id")
		newPrice := fs.Float64("new-price", 0, "new sale price")
		parse(fs)
		req = protocol.MustMessage(protocol.SellerChangeItemPrice, protocol.ChangeItemPriceRequest{
			SessionID: parseUUID(*session),
			ItemID:    parseUUID(*itemID),
			NewPrice:  *newPrice,
		})

	case "update-units":
		fs := pflag.NewFlagSet("update-units", pflag.ExitOnError)
		session := fs.String("session-id", "", "session id")
		itemID := fs.String("item-id", "", "item id")
		quantity := fs.Int32("quantity", 0, "units for sale")
		parse(fs)
		req = protocol.MustMessage(protocol.SellerUpdateUnits, protocol.UpdateUnitsRequest{
			SessionID: parseUUID(*session),
			ItemID:    parseUUID(*itemID),
			Quantity:  *quantity,
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

// capKeywords applies the client-side caps: at most 5 keywords, each
// truncated to 8 characters. The store does not re-enforce these.
func capKeywords(keywords []string) []string {
	if len(keywords) > domain.MaxKeywords {
		keywords = keywords[:domain.MaxKeywords]
	}
	out := make([]string, len(keywords))
	for i, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if runes := []rune(kw); len(runes) > domain.MaxKeywordLen {
			kw = string(runes[:domain.MaxKeywordLen])
		}
		out[i] = kw
	}
	return out
}

func printResponse(resp *protocol.Message) {
	switch resp.Type {
	case protocol.TypeError:
		fmt.Fprintf(os.Stderr, "error: %s\n", resp.ErrorText())
		os.Exit(1)
	case protocol.SellerAccountCreated:
		var p protocol.AccountCreatedPayload
		must(resp.Decode(&p))
		fmt.Printf("account created: %s\n", p.AccountID)
	case protocol.SellerLoggedIn:
		var p protocol.LoggedInPayload
		must(resp.Decode(&p))
		fmt.Printf("logged in, session: %s\n", p.SessionID)
	case protocol.SellerLoggedOut:
		fmt.Println("logged out")
	case protocol.SellerRating:
		var p protocol.SellerRatingPayload
		must(resp.Decode(&p))
		fmt.Printf("rating: %d up / %d down\n", p.Feedback.ThumbsUp, p.Feedback.ThumbsDown)
	case protocol.SellerItemRegistered:
		var p protocol.ItemRegisteredPayload
		must(resp.Decode(&p))
		fmt.Printf("item registered: %s\n", p.ItemID)
	case protocol.SellerPriceChanged:
		fmt.Println("price changed")
	case protocol.SellerUnitsUpdated:
		fmt.Println("units updated")
	case protocol.SellerItems:
		var p protocol.ItemsPayload
		must(resp.Decode(&p))
		for _, item := range p.Items {
			fmt.Printf("%s  %-20s  cat=%d  $%.2f  qty=%d  %s  [%s]\n",
				item.ItemID, item.Name, item.Category, item.SalePrice,
				item.Quantity, item.Condition, strings.Join(item.Keywords, ","))
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
