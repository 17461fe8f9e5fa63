// shop is a small CLI over the storefront API, mainly for poking the
// account-side stores from a terminal: session, addresses, favorites and
// the dashboard stats.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"app/internal/client"
	"app/internal/creds"
	"app/internal/store"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	baseURL := os.Getenv("SHOP_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	api, err := client.New(baseURL)
	if err != nil {
		fail(err)
	}
	stores := store.NewStores(api, creds.DefaultPath())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := run(ctx, api, stores, os.Args[1:]); err != nil {
		fail(err)
	}
}

func run(ctx context.Context, api *client.Client, s *store.Stores, args []string) error {
	if len(args) == 0 {
		usage()
		return nil
	}

	switch args[0] {
	case "login":
		if len(args) != 3 {
			return fmt.Errorf("usage: shop login <email> <password>")
		}
		if err := s.Session.Login(ctx, args[1], args[2]); err != nil {
			return err
		}
		fmt.Printf("logged in as %s\n", s.Session.Identity().Name)
		return nil

	case "logout":
		if err := restore(ctx, s); err != nil {
			return err
		}
		_ = s.Session.Logout(ctx)
		fmt.Println("logged out")
		return nil

	case "me":
		if err := restore(ctx, s); err != nil {
			return err
		}
		ident := s.Session.Identity()
		fmt.Printf("#%d %s <%s> (%s)\n", ident.UserID, ident.Name, ident.Email, ident.Role)
		return nil

	case "products":
		return listProducts(ctx, api)

	case "addresses":
		return addresses(ctx, s, args[1:])

	case "favorites":
		return favorites(ctx, s, args[1:])

	case "stats":
		if err := restore(ctx, s); err != nil {
			return err
		}
		if err := s.Bootstrap(ctx); err != nil {
			return err
		}
		st := s.Stats.Current()
		fmt.Printf("pending reviews: %d\n", st.PendingReviewsCount)
		fmt.Printf("active orders:   %d\n", st.ActiveOrdersCount)
		fmt.Printf("wishlist:        %d\n", st.WishlistCount)
		return nil

	default:
		usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func listProducts(ctx context.Context, api *client.Client) error {
	page, err := api.ListProducts(ctx, 1, 20, "")
	if err != nil {
		return err
	}
	for _, p := range page.Items {
		fmt.Printf("#%d %s  %d (stock %d)\n", p.ID, p.Name, p.Price, p.StockQuantity)
	}
	return nil
}

func addresses(ctx context.Context, s *store.Stores, args []string) error {
	if err := restore(ctx, s); err != nil {
		return err
	}
	if err := s.Addresses.FetchAll(ctx); err != nil {
		return err
	}

	if len(args) == 2 && args[0] == "set-default" {
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("bad address id %q", args[1])
		}
		if err := s.Addresses.SetDefault(ctx, id); err != nil {
			return err
		}
	}

	for _, a := range s.Addresses.Addresses() {
		mark := " "
		if a.IsDefault {
			mark = "*"
		}
		fmt.Printf("%s #%d %s %s, %s, %s/%s\n", mark, a.ID, a.FirstName, a.LastName, a.Line1, a.Region, a.City)
	}
	return nil
}

func favorites(ctx context.Context, s *store.Stores, args []string) error {
	if err := restore(ctx, s); err != nil {
		return err
	}
	if err := s.Favorites.Refresh(ctx); err != nil {
		return err
	}

	if len(args) == 2 {
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("bad product id %q", args[1])
		}
		switch args[0] {
		case "add":
			if err := s.Favorites.Add(ctx, id); err != nil {
				return err
			}
		case "remove":
			if err := s.Favorites.Remove(ctx, id); err != nil {
				return err
			}
		default:
			return fmt.Errorf("usage: shop favorites [add|remove <product-id>]")
		}
	}

	for _, id := range s.Favorites.ProductIDs() {
		fmt.Printf("product #%d\n", id)
	}
	fmt.Printf("%d favorite(s)\n", s.Favorites.Count())
	return nil
}

func restore(ctx context.Context, s *store.Stores) error {
	if err := s.Session.Restore(ctx); err != nil {
		return err
	}
	if !s.Session.Authenticated() {
		return fmt.Errorf("not logged in (run: shop login <email> <password>)")
	}
	return nil
}

func usage() {
	fmt.Println(`usage: shop <command>

  login <email> <password>
  logout
  me
  products
  addresses [set-default <id>]
  favorites [add|remove <product-id>]
  stats`)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
