package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

// newProgressBar shows the bytes read out of size on w.
func newProgressBar(w io.Writer, size int64) *progressbar.ProgressBar {
	return progressbar.NewOptions64(size,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Reading gcode lines"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

// progressReader advances bar as r is consumed.
func progressReader(r io.Reader, bar *progressbar.ProgressBar) io.Reader {
	pr := progressbar.NewReader(r, bar)
	return &pr
}

// layerProgress describes bar with the number of layers seen so far.
func layerProgress(bar *progressbar.ProgressBar) func(int) {
	return func(layer int) {
		if layer > 0 {
			bar.Describe(fmt.Sprintf("Processed %d layers", layer))
		}
	}
}
