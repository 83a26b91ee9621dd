package metrics

import (
	"os"
	"path/filepath"

	gerrors "github.com/go-faster/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// WriteTextfile dumps everything g gathers to path in the node_exporter textfile format.
// A nil gatherer means prometheus.DefaultGatherer.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return gerrors.Wrapf(err, "mkdir %s", dir)
		}
	}
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return gerrors.Wrapf(err, "write metrics to %s", path)
	}
	return nil
}
