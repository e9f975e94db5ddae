// catalogctl is a thin command-line front-end for the catalog API: it renders
// the product list and drives register/login and the gated mutations.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"product-catalog/internal/client"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()
	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "register":
		err = runRegister(ctx, args)
	case "login":
		err = runLogin(ctx, args)
	case "list":
		err = runList(ctx, args)
	case "create":
		err = runCreate(ctx, args)
	case "update":
		err = runUpdate(ctx, args)
	case "delete":
		err = runDelete(ctx, args)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: catalogctl <command> [flags]

commands:
  register  -username -password
  login     -username -password
  list
  create    -token -name -price -category [-description]
  update    -token -id -name -price -category [-description]
  delete    -token -id`)
}

func addrFlag(fs *flag.FlagSet) *string {
	return fs.String("addr", envOr("CATALOG_ADDR", "http://localhost:4000"), "catalog server base URL")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func runRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	addr := addrFlag(fs)
	username := fs.String("username", "", "username (min 3 chars)")
	password := fs.String("password", "", "password (min 6 chars)")
	fs.Parse(args)

	user, err := client.New(*addr).Register(ctx, *username, *password)
	if err != nil {
		return err
	}
	fmt.Printf("registered %s (id %d)\n", user.Username, user.ID)
	return nil
}

func runLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	addr := addrFlag(fs)
	username := fs.String("username", "", "username")
	password := fs.String("password", "", "password")
	fs.Parse(args)

	token, user, err := client.New(*addr).Login(ctx, *username, *password)
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s (id %d)\n", user.Username, user.ID)
	fmt.Println(token)
	return nil
}

func runList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	addr := addrFlag(fs)
	fs.Parse(args)

	products, err := client.New(*addr).Products(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tCATEGORY\tDESCRIPTION")
	for _, p := range products {
		fmt.Fprintf(w, "%d\t%s\t%.2f\t%s\t%s\n", p.ID, p.Name, p.Price, p.Category, p.Description)
	}
	return w.Flush()
}

func runCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	addr := addrFlag(fs)
	token := fs.String("token", envOr("CATALOG_TOKEN", ""), "bearer token from login")
	name := fs.String("name", "", "product name")
	price := fs.Float64("price", 0, "product price (positive)")
	category := fs.String("category", "", "product category")
	description := fs.String("description", "", "product description")
	fs.Parse(args)

	c := client.New(*addr)
	c.SetToken(*token)
	product, err := c.CreateProduct(ctx, client.ProductInput{
		Name:        *name,
		Price:       *price,
		Category:    *category,
		Description: *description,
	})
	if err != nil {
		return err
	}
	fmt.Printf("created product %d: %s\n", product.ID, product.Name)
	return nil
}

func runUpdate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	addr := addrFlag(fs)
	token := fs.String("token", envOr("CATALOG_TOKEN", ""), "bearer token from login")
	id := fs.Int64("id", 0, "product id")
	name := fs.String("name", "", "product name")
	price := fs.Float64("price", 0, "product price (positive)")
	category := fs.String("category", "", "product category")
	description := fs.String("description", "", "product description")
	fs.Parse(args)

	c := client.New(*addr)
	c.SetToken(*token)
	product, err := c.UpdateProduct(ctx, *id, client.ProductInput{
		Name:        *name,
		Price:       *price,
		Category:    *category,
		Description: *description,
	})
	if err != nil {
		return err
	}
	fmt.Printf("updated product %d: %s\n", product.ID, product.Name)
	return nil
}

func runDelete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	addr := addrFlag(fs)
	token := fs.String("token", envOr("CATALOG_TOKEN", ""), "bearer token from login")
	id := fs.Int64("id", 0, "product id")
	fs.Parse(args)

	c := client.New(*addr)
	c.SetToken(*token)
	if err := c.DeleteProduct(ctx, *id); err != nil {
		return err
	}
	fmt.Printf("deleted product %d\n", *id)
	return nil
}
