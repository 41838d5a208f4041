package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/brian-kiplagat/image-resizer/internal/domain"
	"github.com/brian-kiplagat/image-resizer/internal/http/handlers"
	"github.com/brian-kiplagat/image-resizer/internal/http/httpapi"
	"github.com/brian-kiplagat/image-resizer/internal/infra"
	"github.com/brian-kiplagat/image-resizer/internal/infra/credentials"
	"github.com/brian-kiplagat/image-resizer/internal/orderflow"
	"github.com/brian-kiplagat/image-resizer/internal/printprep"
	"github.com/brian-kiplagat/image-resizer/internal/providers/commerce"
	"github.com/brian-kiplagat/image-resizer/internal/providers/drive"
	"github.com/brian-kiplagat/image-resizer/internal/providers/mailer"
	"github.com/brian-kiplagat/image-resizer/internal/providers/sheets"
	"github.com/brian-kiplagat/image-resizer/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	publisher, ledger := buildStorage(ctx, cfg, logger)

	var commerceClient domain.Commerce
	if cfg.CommerceBaseURL != "" {
		commerceClient, err = commerce.NewClient(commerce.Options{
			BaseURL:        cfg.CommerceBaseURL,
			ConsumerKey:    cfg.CommerceKey,
			ConsumerSecret: cfg.CommerceSecret,
			RequestTimeout: cfg.ExternalCallTimeout,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("commerce client")
		}
	} else {
		logger.Warn().Msg("COMMERCE_BASE_URL not set; /confirm-order will fail lookups")
	}

	var mail domain.Mailer
	if cfg.SMTPHost != "" {
		mail = mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom)
	}

	confirmer := &orderflow.Confirmer{
		Publisher:    publisher,
		Ledger:       ledger,
		Commerce:     commerceClient,
		Mailer:       mail,
		DedupeLedger: cfg.LedgerDedupeOrders,
		CallTimeout:  cfg.ExternalCallTimeout,
		Logger:       logger,
	}

	resolver := printprep.NewResolver(cfg.PrintDPI)
	app := handlers.NewApp(cfg, logger, resolver, publisher, confirmer)
	server := infra.NewHTTPServer(cfg, httpapi.NewRouter(app))

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}

// buildStorage wires Drive and Sheets when a keyfile is configured, and falls
// back to the filesystem publisher and CSV ledger for credential-free
// development.
func buildStorage(ctx context.Context, cfg *infra.Config, logger zerolog.Logger) (domain.Publisher, domain.Ledger) {
	if cfg.GoogleKeyFile == "" {
		logger.Warn().Str("path", cfg.StoragePath).Msg("GOOGLE_KEYFILE not set; using filesystem storage")
		store, err := storage.NewFileStore(cfg.StoragePath)
		if err != nil {
			logger.Fatal().Err(err).Msg("filesystem store")
		}
		fileLedger, err := storage.NewFileLedger(cfg.StoragePath)
		if err != nil {
			logger.Fatal().Err(err).Msg("filesystem ledger")
		}
		return store, fileLedger
	}

	sa, err := credentials.Load(cfg.GoogleKeyFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("google credentials")
	}
	publisher, err := drive.NewClient(ctx, sa, cfg.DrivePendingFolderID, cfg.DriveConfirmedFolderID)
	if err != nil {
		logger.Fatal().Err(err).Msg("drive client")
	}
	ledger, err := sheets.NewLedger(ctx, sa, cfg.LedgerSpreadsheetID, cfg.LedgerSheetName)
	if err != nil {
		logger.Fatal().Err(err).Msg("sheets ledger")
	}
	return publisher, ledger
}
