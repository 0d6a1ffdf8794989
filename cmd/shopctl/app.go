package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/thinkcraftlab/studio/internal/config"
	"github.com/thinkcraftlab/studio/pkg/authclient"
	"github.com/thinkcraftlab/studio/pkg/shop"
	"github.com/thinkcraftlab/studio/pkg/shop/localstore"
)

const usage = `usage: shopctl [-api URL] [-state FILE] <command> [args]

commands:
  signup <username> <email>      create an account and sign in
  login <username>               sign in
  logout                         sign out
  whoami                         show the signed-in profile
  products [-category C] [-page N] [-size N]
  product <id>
  search <query>
  cart                           show the local cart
  cart add <id> [size]           add one unit (size defaults to Medium)
  cart rm <id>                   remove every line of a product
  cart qty <id> <n>              set quantity, 0 removes
  cart clear
  wishlist                       show the local wishlist
  wishlist add <id>
  wishlist rm <id>
  wishlist move <id>             move to the cart in size Medium
  sync                           push the local cart to your account
`

var errUsage = errors.New("invalid usage")

type app struct {
	stdin   io.Reader
	in      *bufio.Reader
	out     io.Writer
	client  *authclient.Client
	session *authclient.Session
	store   *shop.Store
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("shopctl", flag.ContinueOnError)
	fs.SetOutput(stdout)
	api := fs.String("api", config.EnvDefault("SHOP_API_URL", "http://localhost:8080/api/v1"), "API root URL")
	state := fs.String("state", config.EnvDefault("SHOP_STATE", "shop.db"), "local state file")
	fs.Usage = func() { fmt.Fprint(stdout, usage) }

	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return errUsage
	}

	st, err := localstore.Open(ctx, *state)
	if err != nil {
		return fmt.Errorf("open local state: %w", err)
	}
	defer st.Close()

	client := authclient.NewClient(*api)
	a := &app{
		stdin:   stdin,
		in:      bufio.NewReader(stdin),
		out:     stdout,
		client:  client,
		session: authclient.OpenSession(ctx, client, st),
		store:   shop.Open(ctx, st),
	}
	return a.dispatch(ctx, rest[0], rest[1:])
}

func (a *app) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "signup":
		return a.signup(ctx, args)
	case "login":
		return a.login(ctx, args)
	case "logout":
		return a.logout(ctx)
	case "whoami":
		return a.whoami(ctx)
	case "products":
		return a.products(ctx, args)
	case "product":
		return a.product(ctx, args)
	case "search":
		return a.search(ctx, args)
	case "cart":
		return a.cart(ctx, args)
	case "wishlist":
		return a.wishlist(ctx, args)
	case "sync":
		return a.sync(ctx)
	default:
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

// readPassword reads without echo from a terminal and falls back to a plain
// line for pipes.
func (a *app) readPassword() (string, error) {
	fmt.Fprint(a.out, "Password: ")
	if f, ok := a.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		pw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(a.out)
		if err != nil {
			return "", err
		}
		return string(pw), nil
	}

	line, err := a.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (a *app) signup(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: signup <username> <email>", errUsage)
	}
	pw, err := a.readPassword()
	if err != nil {
		return err
	}
	u, err := a.session.Signup(ctx, args[0], args[1], pw)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "welcome, %s\n", u.Username)
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: login <username>", errUsage)
	}
	pw, err := a.readPassword()
	if err != nil {
		return err
	}
	u, err := a.session.Login(ctx, args[0], pw)
	if err != nil {
		if errors.Is(err, authclient.ErrInvalidCredentials) {
			return errors.New("invalid username or password")
		}
		return err
	}
	fmt.Fprintf(a.out, "signed in as %s\n", u.Username)
	return nil
}

func (a *app) logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "signed out")
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	if _, err := a.session.RequireUser(); err != nil {
		return err
	}
	u, err := a.client.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s <%s> member since %s\n", u.Username, u.Email, u.CreatedAt.Format("2006-01-02"))
	return nil
}

func (a *app) products(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("products", flag.ContinueOnError)
	fs.SetOutput(a.out)
	category := fs.String("category", "", "filter by category")
	page := fs.Int("page", 1, "page number")
	size := fs.Int("size", 12, "page size")
	if err := fs.Parse(args); err != nil {
		return err
	}

	res, err := a.client.Products(ctx, *category, *page, *size)
	if err != nil {
		return err
	}
	a.printProducts(res)
	return nil
}

func (a *app) search(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: search <query>", errUsage)
	}
	res, err := a.client.SearchProducts(ctx, strings.Join(args, " "), 1, 20)
	if err != nil {
		return err
	}
	a.printProducts(res)
	return nil
}

func (a *app) printProducts(res *authclient.ProductPage) {
	for _, p := range res.Data {
		fmt.Fprintf(a.out, "%3d  %-24s %8s  %s\n", p.ID, p.Name, p.Price, p.Category)
	}
	fmt.Fprintf(a.out, "page %d of %d (%d products)\n", res.Meta.Page, res.Meta.TotalPages, res.Meta.Total)
}

func (a *app) product(ctx context.Context, args []string) error {
	p, err := a.fetchProduct(ctx, args)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d  %s  %s\n%s\n%s\n", p.ID, p.Name, p.Price, p.Description, p.Category)
	return nil
}

func (a *app) fetchProduct(ctx context.Context, args []string) (*authclient.Product, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: missing product id", errUsage)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, fmt.Errorf("%w: product id must be a number", errUsage)
	}
	return a.client.Product(ctx, id)
}

func (a *app) cart(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.printCart()
		return nil
	}

	switch args[0] {
	case "add":
		p, err := a.fetchProduct(ctx, args[1:])
		if err != nil {
			return err
		}
		size := ""
		if len(args) > 2 {
			size = args[2]
		}
		if err := a.store.AddToCart(ctx, p.ShopProduct(), size); err != nil {
			return err
		}
	case "rm":
		id, err := intArg(args, 1)
		if err != nil {
			return err
		}
		if err := a.store.RemoveFromCart(ctx, id); err != nil {
			return err
		}
	case "qty":
		id, err := intArg(args, 1)
		if err != nil {
			return err
		}
		n, err := intArg(args, 2)
		if err != nil {
			return err
		}
		if err := a.store.UpdateCartQuantity(ctx, id, n); err != nil {
			return err
		}
	case "clear":
		if err := a.store.ClearCart(ctx); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: unknown cart command %q", errUsage, args[0])
	}

	a.printCart()
	return nil
}

func (a *app) printCart() {
	lines := a.store.Cart()
	if len(lines) == 0 {
		fmt.Fprintln(a.out, "cart is empty")
		return
	}
	for _, l := range lines {
		fmt.Fprintf(a.out, "%3d  %-24s %-8s x%d  %8s\n", l.ID, l.Name, l.Size, l.Quantity, l.Price)
	}
	fmt.Fprintf(a.out, "items: %d  total: $%s\n", a.store.CartCount(), a.store.CartTotal())
}

func (a *app) wishlist(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.printWishlist()
		return nil
	}

	switch args[0] {
	case "add":
		p, err := a.fetchProduct(ctx, args[1:])
		if err != nil {
			return err
		}
		added, err := a.store.AddToWishlist(ctx, p.ShopProduct())
		if err != nil {
			return err
		}
		if !added {
			fmt.Fprintln(a.out, "already on your wishlist")
		}
	case "rm":
		id, err := intArg(args, 1)
		if err != nil {
			return err
		}
		if err := a.store.RemoveFromWishlist(ctx, id); err != nil {
			return err
		}
	case "move":
		id, err := intArg(args, 1)
		if err != nil {
			return err
		}
		moved, err := a.store.MoveToCart(ctx, id)
		if err != nil {
			return err
		}
		if !moved {
			return fmt.Errorf("product %d is not on your wishlist", id)
		}
	default:
		return fmt.Errorf("%w: unknown wishlist command %q", errUsage, args[0])
	}

	a.printWishlist()
	return nil
}

func (a *app) printWishlist() {
	items := a.store.Wishlist()
	if len(items) == 0 {
		fmt.Fprintln(a.out, "wishlist is empty")
		return
	}
	for _, p := range items {
		fmt.Fprintf(a.out, "%3d  %-24s %8s\n", p.ID, p.Name, p.Price)
	}
}

// sync uploads the local cart to the signed-in account. Each line leaves the
// local cart as soon as the server accepts it, so a failed sync can be rerun
// without doubling quantities.
func (a *app) sync(ctx context.Context) error {
	if _, err := a.session.RequireUser(); err != nil {
		return err
	}

	for _, l := range a.store.Cart() {
		if _, err := a.client.AddToCart(ctx, l.ID, l.Size, l.Quantity); err != nil {
			return fmt.Errorf("sync product %d: %w", l.ID, err)
		}
		if err := a.store.RemoveLine(ctx, l.ID, l.Size); err != nil {
			return err
		}
	}

	remote, err := a.client.GetCart(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "account cart: %d items, total $%s\n", remote.Count, remote.Total)
	return nil
}

func intArg(args []string, i int) (int, error) {
	if len(args) <= i {
		return 0, fmt.Errorf("%w: missing argument", errUsage)
	}
	n, err := strconv.Atoi(args[i])
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", errUsage, args[i])
	}
	return n, nil
}
