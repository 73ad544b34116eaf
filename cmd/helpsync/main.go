package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/helpsync-cli/internal/adapters/driven/helpcenter"
	"github.com/custodia-labs/helpsync-cli/internal/adapters/driven/translate"
	"github.com/custodia-labs/helpsync-cli/internal/adapters/driven/tree"
	"github.com/custodia-labs/helpsync-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/helpsync-cli/internal/core/domain"
	"github.com/custodia-labs/helpsync-cli/internal/core/ports/driven"
	"github.com/custodia-labs/helpsync-cli/internal/core/ports/driving"
	"github.com/custodia-labs/helpsync-cli/internal/core/services"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := cli.Execute(version, buildReconciler); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// buildReconciler wires the adapters for one run. The translation
// uploader is optional; without an API key the translate command
// reports it unavailable and everything else works.
func buildReconciler(settings domain.Settings) (driving.Reconciler, error) {
	store := tree.NewStore(settings.Root)
	ids := tree.NewSidecarStore(settings.Root)
	remote := helpcenter.NewStore(helpcenter.NewClient(settings.Subdomain, settings.User, settings.Token))

	var translator driven.TranslationUploader
	if settings.TranslationAPIKey != "" {
		translator = translate.NewUploader(settings.TranslationAPIKey, settings.Root)
	}

	return services.NewReconciler(store, ids, remote, translator, settings), nil
}
