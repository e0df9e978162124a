// Command apicheck logs in against the configured backend and reports
// whether the app would be able to talk to it.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/boddenberg/digtecnico-client-go/internal/config"
	"github.com/boddenberg/digtecnico-client-go/internal/domain"
	"github.com/boddenberg/digtecnico-client-go/internal/infra/apiclient"
	"github.com/boddenberg/digtecnico-client-go/internal/infra/observability"
	"github.com/boddenberg/digtecnico-client-go/internal/infra/resilience"
	"github.com/boddenberg/digtecnico-client-go/internal/infra/tokenstore"
	"github.com/boddenberg/digtecnico-client-go/internal/service"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

func main() {
	var (
		username = flag.String("username", "", "login username")
		password = flag.String("password", "", "login password")
		envFile  = flag.String("env-file", ".env", "optional dotenv file")
		wait     = flag.Int("wait", 0, "retries while the backend is unreachable")
		logout   = flag.Bool("logout", true, "log out after the check")
	)
	flag.Parse()

	if *username == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: apicheck -username <user> -password <pass> [-wait N]")
		os.Exit(2)
	}

	os.Exit(run(*envFile, domain.Credential{Identifier: *username, Secret: *password}, *wait, *logout))
}

func run(envFile string, cred domain.Credential, wait int, logout bool) int {
	// --- Config ---
	cfg, err := config.Load(envFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		return 2
	}

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "digtecnico-apicheck")
	if err != nil {
		logger.Error("failed to init tracer", zap.Error(err))
		return 1
	}
	defer shutdown(context.Background())

	// --- Token store ---
	store, err := tokenstore.Open(cfg, logger)
	if err != nil {
		logger.Error("failed to open token store", zap.Error(err))
		return 1
	}

	// --- Client ---
	metrics := observability.NewMetrics()
	var cb *gobreaker.CircuitBreaker
	if cfg.CircuitBreaker {
		cb = resilience.NewCircuitBreaker("digtecnico-api", apiclient.IsTransportFailure, logger)
	}
	shared := apiclient.NewLazy(func() *apiclient.Client {
		return apiclient.New(
			&http.Client{},
			apiclient.Options{BaseURL: cfg.BaseURL, RootURL: cfg.RootURL, Timeout: cfg.Timeout},
			store,
			cb,
			metrics,
			logger,
		)
	})
	auth := service.NewAuthService(shared.Get(), store, metrics, logger)

	fmt.Printf("Testando conexão com %s\n", cfg.BaseURL)

	ctx := context.Background()
	var session *domain.Session
	err = resilience.RetryWithBackoff(ctx, resilience.Config{
		MaxRetries:     wait,
		InitialBackoff: 500 * time.Millisecond,
		ShouldRetry:    domain.IsConnectivity,
	}, func() error {
		var lerr error
		session, lerr = auth.Login(ctx, cred)
		if lerr != nil && domain.IsConnectivity(lerr) && wait > 0 {
			fmt.Println("Backend inacessível, tentando novamente...")
		}
		return lerr
	})
	if err != nil {
		fmt.Println("Falha no login:", explain(err, cfg.BaseURL))
		return 1
	}

	u := session.User
	fmt.Println("Login realizado com sucesso")
	fmt.Printf("  Usuário: %s (%s)\n", u.Name, u.Username)
	fmt.Printf("  Perfil:  %s\n", u.Role)
	if u.OrganizationLabel != "" {
		fmt.Printf("  Filial:  %s\n", u.OrganizationLabel)
	}
	fmt.Printf("  Token:   %s\n", tokenPrefix(session.AccessToken))
	if exp, ok := auth.TokenExpiry(ctx); ok {
		fmt.Printf("  Expira:  %s\n", exp.Local().Format(time.RFC3339))
	}

	dashboard := service.NewDashboardService(shared.Get(), logger)
	if overview, err := dashboard.Overview(ctx); err != nil {
		fmt.Println("Dashboard indisponível:", explain(err, cfg.BaseURL))
	} else {
		fmt.Printf("  Ordens abertas: %d, designadas: %d, recentes: %d\n",
			overview.Stats.OrdensAbertas, overview.Stats.OrdensDesignadas, len(overview.RecentOrders))
	}

	if logout {
		if err := auth.Logout(ctx); err != nil {
			logger.Warn("local session cleanup incomplete", zap.Error(err))
		}
	}
	return 0
}

// explain maps an API failure to operator guidance.
func explain(err error, baseURL string) string {
	apiErr, ok := domain.AsAPIError(err)
	if !ok {
		return err.Error()
	}
	switch apiErr.StatusCode {
	case 0:
		return fmt.Sprintf("servidor inacessível em %s. Verifique se o backend está rodando e se a URL está correta (%s)", baseURL, apiErr.Message)
	case http.StatusUnauthorized:
		return "usuário ou senha inválidos"
	case http.StatusNotFound:
		return "endpoint não encontrado. Verifique API_BASE_URL (deve terminar em /mobile)"
	default:
		return fmt.Sprintf("%s (status %d: %s)", domain.UserMessage(err), apiErr.StatusCode, apiErr.Kind)
	}
}

func tokenPrefix(token string) string {
	const n = 20
	if len(token) <= n {
		return token
	}
	return token[:n] + "..."
}
