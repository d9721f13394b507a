package variants

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"pixelmill/pkg/logger"
	"pixelmill/pkg/optimizer"
)

// ProgressFunc reports batch progress: percent is 0.0-1.0, label names the
// item currently being processed ("image 3 of 5" or a file name).
type ProgressFunc func(percent float64, label string)

// Summary aggregates one batch run.
type Summary struct {
	// JobID tags log lines from this run.
	JobID string

	Total     int
	Succeeded int
	Failed    int

	// BytesIn / BytesOut sum input and encoded output sizes.
	BytesIn  int64
	BytesOut int64
}

func (s Summary) String() string {
	saved := s.BytesIn - s.BytesOut
	return fmt.Sprintf("batch %s: %d/%d succeeded | %s -> %s (saved %s)",
		s.JobID, s.Succeeded, s.Total,
		optimizer.FormatBytes(s.BytesIn), optimizer.FormatBytes(s.BytesOut),
		optimizer.FormatBytes(saved))
}

// FileResult pairs a batch output with the path it came from.
type FileResult struct {
	Path   string
	Output *optimizer.Optimized
}

// BatchProcess optimizes blobs sequentially under one options value. Only
// one decoded raster is live at a time, bounding peak memory. A failing
// blob is logged and omitted from the result slice; the batch itself never
// fails. Cancelling ctx stops the batch before the next item; the item in
// flight runs to completion.
func BatchProcess(ctx context.Context, blobs [][]byte, opts optimizer.Options, onProgress ProgressFunc) ([]*optimizer.Optimized, Summary) {
	labels := make([]string, len(blobs))
	for i := range blobs {
		labels[i] = fmt.Sprintf("image %d of %d", i+1, len(blobs))
	}
	outs, _, summary := batch(ctx, labels, func(i int) ([]byte, error) { return blobs[i], nil }, opts, onProgress)
	return outs, summary
}

// BatchFiles is BatchProcess over file paths: unreadable files are treated
// like undecodable ones (logged, omitted).
func BatchFiles(ctx context.Context, paths []string, opts optimizer.Options, onProgress ProgressFunc) ([]FileResult, Summary) {
	labels := make([]string, len(paths))
	for i, p := range paths {
		labels[i] = filepath.Base(p)
	}
	outs, indices, summary := batch(ctx, labels, func(i int) ([]byte, error) { return os.ReadFile(paths[i]) }, opts, onProgress)

	results := make([]FileResult, len(outs))
	for i, out := range outs {
		results[i] = FileResult{Path: paths[indices[i]], Output: out}
	}
	return results, summary
}

// batch is the shared sequential loop. It returns the successful outputs
// in input order plus the input index of each.
func batch(ctx context.Context, labels []string, fetch func(int) ([]byte, error), opts optimizer.Options, onProgress ProgressFunc) ([]*optimizer.Optimized, []int, Summary) {
	summary := Summary{
		JobID: uuid.New().String()[:8],
		Total: len(labels),
	}
	results := make([]*optimizer.Optimized, 0, len(labels))
	indices := make([]int, 0, len(labels))

	for i, label := range labels {
		if ctx.Err() != nil {
			logger.LogWarn("batch %s: cancelled after %d of %d items", summary.JobID, i, summary.Total)
			summary.Failed += summary.Total - i
			break
		}
		if onProgress != nil {
			onProgress(float64(i)/float64(summary.Total), label)
		}

		data, err := fetch(i)
		if err != nil {
			logger.LogWarn("batch %s: %s unreadable: %v", summary.JobID, label, err)
			summary.Failed++
			continue
		}
		summary.BytesIn += int64(len(data))

		out, err := optimizer.Optimize(ctx, data, opts)
		if err != nil {
			logger.LogWarn("batch %s: %s failed: %v", summary.JobID, label, err)
			summary.Failed++
			continue
		}

		results = append(results, out)
		indices = append(indices, i)
		summary.Succeeded++
		summary.BytesOut += out.Size
	}

	if onProgress != nil {
		onProgress(1.0, "done")
	}
	return results, indices, summary
}
