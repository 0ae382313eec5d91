package app

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"residency_hub/internal/domain"
)

type ImportReport struct {
	Created    int
	Duplicates int
	Invalid    int
	Failed     int
}

// Importer bulk-loads residencies with a bounded number of concurrent inserts.
type Importer struct {
	cmd     *CommandService
	workers int
}

func NewImporter(cmd *CommandService, workers int) *Importer {
	if workers <= 0 {
		workers = 8
	}
	return &Importer{cmd: cmd, workers: workers}
}

// Run inserts every input, skipping duplicates and invalid rows. The cache is
// invalidated once at the end if anything was created, including when ctx is
// cancelled part way through.
func (im *Importer) Run(ctx context.Context, inputs []ResidencyInput) (ImportReport, error) {
	sem := semaphore.NewWeighted(int64(im.workers))
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		rep    ImportReport
		runErr error
	)

	for i, in := range inputs {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			runErr = err
			break
		}
		if err := ctx.Err(); err != nil {
			sem.Release(1)
			runErr = err
			break
		}

		wg.Add(1)
		go func(idx int, in ResidencyInput) {
			defer wg.Done()
			defer sem.Release(1)

			_, err := im.cmd.insert(ctx, in)
			var ve *domain.ValidationError

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				rep.Created++
			case errors.Is(err, domain.ErrConflict):
				rep.Duplicates++
				log.Info().Int("row", idx).Str("address", in.Address).Msg("duplicate residency skipped")
			case errors.As(err, &ve):
				rep.Invalid++
				log.Warn().Int("row", idx).Strs("errors", ve.Errors).Msg("invalid residency skipped")
			default:
				rep.Failed++
				log.Warn().Int("row", idx).Err(err).Msg("import failed")
			}
		}(i, in)
	}

	wg.Wait()
	if rep.Created > 0 {
		// rows already committed must become visible even if ctx is gone
		im.cmd.invalidate(context.WithoutCancel(ctx))
	}
	return rep, runErr
}
