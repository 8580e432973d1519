package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Summary reports the outcome of one batch run.
type Summary struct {
	BatchID    string
	Dispatched int
	Processed  int
	Failed     int
}

// RunBatch drains up to one batch of pending records through the worker
// pool and applies every result to the catalog. Job failures are data and
// never abort the batch; only a catalog write failure does. The returned
// summary counts results applied before any such abort.
func (p *Pipeline) RunBatch(ctx context.Context) (Summary, error) {
	summary := Summary{BatchID: uuid.NewString()}

	records, err := p.store.LoadPending(ctx, p.cfg.Processing.BatchSize)
	if err != nil {
		return summary, fmt.Errorf("load pending: %w", err)
	}
	if len(records) == 0 {
		p.logger.Info("no pending records", "batch_id", summary.BatchID)
		return summary, nil
	}
	summary.Dispatched = len(records)

	workers := p.cfg.Processing.Workers
	if workers > len(records) {
		workers = len(records)
	}
	if workers < 1 {
		workers = 1
	}

	// Both channels are buffered to the batch size so workers never block
	// on send, even if the collector aborts early.
	jobs := make(chan job, len(records))
	results := make(chan jobResult, len(records))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results <- p.processJob(ctx, j)
			}
		}()
	}

	for _, record := range records {
		jobs <- job{remoteID: record.RemoteID, fileName: record.FileName}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	p.logger.Info("batch started",
		"batch_id", summary.BatchID,
		"jobs", summary.Dispatched,
		"workers", workers,
	)

	for result := range results {
		if err := p.applyResult(ctx, result, &summary); err != nil {
			return summary, err
		}
	}

	p.logger.Info("batch complete",
		"batch_id", summary.BatchID,
		"processed", summary.Processed,
		"failed", summary.Failed,
	)
	return summary, nil
}

// applyResult performs the single catalog mutation for one result and
// emits its progress event. A store failure here is fatal to the batch.
func (p *Pipeline) applyResult(ctx context.Context, result jobResult, summary *Summary) error {
	if result.err != nil {
		if err := p.store.MarkFailed(ctx, result.remoteID, result.err.Error()); err != nil {
			return fmt.Errorf("record failure for %s: %w", result.remoteID, err)
		}
		summary.Failed++
		p.logger.Warn("job failed",
			"batch_id", summary.BatchID,
			"remote_id", result.remoteID,
			"file", result.fileName,
			"error", result.err,
		)
		p.emit(Event{
			RemoteID: result.remoteID,
			FileName: result.fileName,
			Error:    result.err.Error(),
		})
		return nil
	}

	if err := p.store.MarkProcessed(ctx, result.remoteID, result.meta, result.targets); err != nil {
		return fmt.Errorf("record success for %s: %w", result.remoteID, err)
	}
	summary.Processed++
	p.logger.Info("job processed",
		"batch_id", summary.BatchID,
		"remote_id", result.remoteID,
		"file", result.fileName,
		"targets", len(result.targets),
	)
	p.emit(Event{
		RemoteID: result.remoteID,
		FileName: result.fileName,
		Success:  true,
		Targets:  result.targets,
	})
	return nil
}
