// Package release downloads and unpacks prebuilt TES3MP archives.
package release

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/briandowns/spinner"

	"tes3mpctl/pkg/logging"
)

// Download streams url into target. Release archives run to a few hundred
// megabytes, so a spinner keeps the terminal alive while bytes flow.
func Download(ctx context.Context, url, target string) error {
	logging.Info("release", "downloading %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("building download request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("downloading release: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("downloading release: unexpected status %s", resp.Status)
	}

	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("creating %s: %w", target, err)
	}

	spin := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	spin.Suffix = " Downloading..."
	spin.Start()
	_, err = io.Copy(out, resp.Body)
	spin.Stop()

	if err != nil {
		out.Close()
		return fmt.Errorf("writing %s: %w", target, err)
	}
	return out.Close()
}
