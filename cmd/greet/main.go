// Command greet fetches the greeting once and prints the rendered element text.
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/janisto/greeting-demo/internal/client"
	"github.com/janisto/greeting-demo/internal/platform/config"
	applog "github.com/janisto/greeting-demo/internal/platform/logging"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

func main() {
	applog.Setup(applog.WithService("greet", Version))
	if err := config.LoadDotEnv(); err != nil {
		applog.LogWarn(context.Background(), "dotenv load failed", zap.Error(err))
	}
	code := run(context.Background(), config.LoadClient(), http.DefaultClient, os.Stdout)
	_ = applog.Sync()
	os.Exit(code)
}

// run renders the greeting into an in-memory page and writes the element text
// to out. It returns the process exit code.
func run(ctx context.Context, cfg config.Client, httpClient *http.Client, out io.Writer) int {
	page := client.NewPage(cfg.ElementID)
	c := client.NewClient(httpClient, client.WithBaseURL(cfg.GreetingURL))

	start := time.Now()
	if err := <-c.Load(ctx, page, cfg.ElementID); err != nil {
		return 1
	}
	applog.LogInfo(ctx, "greeting rendered",
		zap.String("elementId", cfg.ElementID),
		zap.Duration("duration", time.Since(start)),
	)
	_, _ = fmt.Fprintln(out, page.Element(cfg.ElementID).Text())
	return 0
}
