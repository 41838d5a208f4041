// Command confirm runs the order confirmation workflow for a single order id
// from the command line. It exists for manual reconciliation: the dual
// publish and the relocation have no automatic rollback, so an operator
// sometimes needs to re-drive an order after a partial failure.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/brian-kiplagat/image-resizer/internal/domain"
	"github.com/brian-kiplagat/image-resizer/internal/infra"
	"github.com/brian-kiplagat/image-resizer/internal/infra/credentials"
	"github.com/brian-kiplagat/image-resizer/internal/orderflow"
	"github.com/brian-kiplagat/image-resizer/internal/providers/commerce"
	"github.com/brian-kiplagat/image-resizer/internal/providers/drive"
	"github.com/brian-kiplagat/image-resizer/internal/providers/mailer"
	"github.com/brian-kiplagat/image-resizer/internal/providers/sheets"
	"github.com/brian-kiplagat/image-resizer/internal/storage"
)

func main() {
	orderID := flag.String("order", "", "order id to confirm")
	notify := flag.Bool("notify", false, "send the customer confirmation mail")
	flag.Parse()

	if strings.TrimSpace(*orderID) == "" {
		fmt.Fprintln(os.Stderr, "usage: confirm -order <id> [-notify]")
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg, err := infra.LoadConfig()
	if err != nil {
		fatal(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)
	ctx := context.Background()

	var publisher domain.Publisher
	var ledger domain.Ledger
	if cfg.GoogleKeyFile == "" {
		store, err := storage.NewFileStore(cfg.StoragePath)
		if err != nil {
			fatal(err)
		}
		fileLedger, err := storage.NewFileLedger(cfg.StoragePath)
		if err != nil {
			fatal(err)
		}
		publisher, ledger = store, fileLedger
	} else {
		sa, err := credentials.Load(cfg.GoogleKeyFile)
		if err != nil {
			fatal(err)
		}
		if publisher, err = drive.NewClient(ctx, sa, cfg.DrivePendingFolderID, cfg.DriveConfirmedFolderID); err != nil {
			fatal(err)
		}
		if ledger, err = sheets.NewLedger(ctx, sa, cfg.LedgerSpreadsheetID, cfg.LedgerSheetName); err != nil {
			fatal(err)
		}
	}

	commerceClient, err := commerce.NewClient(commerce.Options{
		BaseURL:        cfg.CommerceBaseURL,
		ConsumerKey:    cfg.CommerceKey,
		ConsumerSecret: cfg.CommerceSecret,
		RequestTimeout: cfg.ExternalCallTimeout,
	})
	if err != nil {
		fatal(err)
	}

	confirmer := &orderflow.Confirmer{
		Publisher:    publisher,
		Ledger:       ledger,
		Commerce:     commerceClient,
		DedupeLedger: cfg.LedgerDedupeOrders,
		CallTimeout:  cfg.ExternalCallTimeout,
		Logger:       logger,
	}
	if *notify && cfg.SMTPHost != "" {
		confirmer.Mailer = mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom)
	}

	res, err := confirmer.Confirm(ctx, *orderID)
	if err != nil {
		if len(res.MovedFiles) > 0 {
			fmt.Fprintf(os.Stderr, "moved before failure: %s\n", strings.Join(res.MovedFiles, ", "))
		}
		fatal(err)
	}

	if !res.Confirmed {
		fmt.Printf("order %s is not yet confirmed (status: %s)\n", *orderID, res.Order.Status)
		return
	}
	fmt.Printf("order %s confirmed: moved %d file(s)", *orderID, len(res.MovedFiles))
	if res.LedgerSkipped {
		fmt.Print(", ledger row already present")
	}
	if res.Notified {
		fmt.Print(", customer notified")
	}
	fmt.Println()
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "confirm:", err)
	os.Exit(1)
}
