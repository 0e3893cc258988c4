// ledgerctl drives the client engine against a running backend from the
// command line: list a module's records, print aggregate statistics, or
// answer a capability question for the configured session.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ledgerline/ledgerline-mobile/internal/app"
	"github.com/ledgerline/ledgerline-mobile/internal/backend"
	"github.com/ledgerline/ledgerline-mobile/internal/listing"
	"github.com/ledgerline/ledgerline-mobile/internal/platform/cache"
	"github.com/ledgerline/ledgerline-mobile/internal/platform/httpx"
	"github.com/ledgerline/ledgerline-mobile/internal/rbac"
	"github.com/ledgerline/ledgerline-mobile/internal/resources"
	"github.com/ledgerline/ledgerline-mobile/internal/session"
	"github.com/ledgerline/ledgerline-mobile/internal/stats"
)

func main() {
	module := flag.String("module", "expenses", "module to operate on")
	verb := flag.String("verb", "list", "list, stats, or can")
	action := flag.String("action", "view", "action for the can verb")
	query := flag.String("q", "", "client-side text filter for list output")
	email := flag.String("email", "", "sign in before running (uses -password)")
	password := flag.String("password", "", "password for -email")
	flag.Parse()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := app.NewLogger(cfg)

	if err := run(cfg, logger, *module, *verb, *action, *query, *email, *password); err != nil {
		logger.Error("ledgerctl failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *app.Config, logger *slog.Logger, module, verb, action, query, email, password string) error {
	ctx := context.Background()

	token := os.Getenv("LEDGERLINE_TOKEN")
	sess := sessionFromEnv()
	if email != "" {
		var err error
		token, sess, err = login(ctx, cfg.BackendBaseURL, email, password)
		if err != nil {
			return err
		}
	}

	client := backend.NewClient(cfg.BackendBaseURL, session.StaticCredentials(token), cfg.RequestTimeout, logger)

	var source rbac.GrantSource = client
	if cfg.RedisAddr != "" {
		redisClient, err := cache.New(ctx, cfg.RedisAddr)
		if err != nil {
			return err
		}
		defer func() { _ = redisClient.Close() }()
		source = rbac.NewCache(client, redisClient, cfg.GrantCacheTTL, logger)
	}
	store := rbac.NewStore(session.StaticProvider(sess), source, logger)

	m := rbac.Module(module)
	if verb == "can" {
		return runCan(ctx, store, m, rbac.Action(action))
	}

	switch m {
	case rbac.ModuleExpenses:
		return runList[resources.Expense](ctx, client, store, m, verb, query, logger)
	case rbac.ModuleInventory:
		return runList[resources.InventoryItem](ctx, client, store, m, verb, query, logger)
	case rbac.ModuleItems:
		return runList[resources.Item](ctx, client, store, m, verb, query, logger)
	case rbac.ModulePayments:
		return runList[resources.Payment](ctx, client, store, m, verb, query, logger)
	case rbac.ModuleInvoices:
		return runList[resources.Invoice](ctx, client, store, m, verb, query, logger)
	case rbac.ModuleReturnInvoices:
		return runList[resources.ReturnInvoice](ctx, client, store, m, verb, query, logger)
	case rbac.ModuleStaff:
		return runList[resources.StaffMember](ctx, client, store, m, verb, query, logger)
	case rbac.ModuleUsers:
		return runList[resources.User](ctx, client, store, m, verb, query, logger)
	default:
		return fmt.Errorf("unknown module %q", module)
	}
}

type resource interface {
	stats.Source
	listing.Searchable
}

func runList[T resource](ctx context.Context, client *backend.Client, store *rbac.Store, m rbac.Module, verb, query string, logger *slog.Logger) error {
	scr, err := resources.Mount(ctx, store, resources.NewList[T](client, m, logger), m, logger)
	if err != nil {
		return err
	}
	if scr.Denied {
		fmt.Printf("access denied: %s.view\n", m)
		return nil
	}

	for scr.List.State().HasMore {
		if err := scr.List.LoadMore(ctx); err != nil {
			return err
		}
	}
	items := listing.Apply(scr.List.State().Items, listing.TextFilter[T](query))

	p := message.NewPrinter(language.English)
	switch verb {
	case "list":
		for _, item := range items {
			line, err := json.Marshal(item)
			if err != nil {
				return err
			}
			fmt.Println(string(line))
		}
		p.Printf("%d records\n", len(items))
	case "stats":
		summary := stats.Compute(items)
		p.Printf("records: %d\n", summary.Count)
		for status, n := range summary.ByStatus {
			p.Printf("  %s: %d\n", status, n)
		}
		for field, sum := range summary.Sums {
			p.Printf("  sum(%s): %.2f\n", field, sum)
		}
	default:
		return fmt.Errorf("unknown verb %q", verb)
	}
	return nil
}

func runCan(ctx context.Context, store *rbac.Store, m rbac.Module, a rbac.Action) error {
	sess, grants, err := store.LoadForCurrentUser(ctx)
	if err != nil {
		return err
	}
	if rbac.Can(sess, grants, m, a) {
		fmt.Printf("allowed: %s.%s\n", m, a)
	} else {
		fmt.Printf("denied: %s.%s\n", m, a)
	}
	return nil
}

func sessionFromEnv() session.Session {
	userID, _ := strconv.ParseInt(os.Getenv("LEDGERLINE_USER_ID"), 10, 64)
	return session.Session{
		UserID: userID,
		Role:   session.Role(os.Getenv("LEDGERLINE_ROLE")),
	}
}

func login(ctx context.Context, baseURL, email, password string) (string, session.Session, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return "", session.Session{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/api/login", bytes.NewReader(body))
	if err != nil {
		return "", session.Session{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", session.Session{}, fmt.Errorf("%w: %v", httpx.ErrTransport, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var env httpx.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return "", session.Session{}, fmt.Errorf("%w: decode envelope: %v", httpx.ErrTransport, err)
	}
	if !env.OK() {
		return "", session.Session{}, env.Err()
	}

	var data struct {
		Token string `json:"token"`
		User  struct {
			ID   int64  `json:"id"`
			Role string `json:"role"`
		} `json:"user"`
	}
	if err := env.DecodeData(&data); err != nil {
		return "", session.Session{}, err
	}
	return data.Token, session.Session{UserID: data.User.ID, Role: session.Role(data.User.Role)}, nil
}
