package rendering

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// DrawJob is one scaled, tinted image draw.
type DrawJob struct {
	Image      *ebiten.Image
	X, Y       float64
	ScaleX     float64
	ScaleY     float64
	ColorScale struct{ R, G, B, A float32 }
}

// CommandBatch queues draws and issues them in order. Ebiten draw calls
// must be made from the draw goroutine, so only queueing is concurrent.
type CommandBatch struct {
	jobs  []DrawJob
	mutex sync.Mutex
}

func NewCommandBatch() *CommandBatch {
	return &CommandBatch{
		jobs: make([]DrawJob, 0, 512),
	}
}

// Add queues a single draw.
func (cb *CommandBatch) Add(job DrawJob) {
	cb.mutex.Lock()
	cb.jobs = append(cb.jobs, job)
	cb.mutex.Unlock()
}

// AddAll queues several draws under one lock.
func (cb *CommandBatch) AddAll(jobs []DrawJob) {
	if len(jobs) == 0 {
		return
	}
	cb.mutex.Lock()
	cb.jobs = append(cb.jobs, jobs...)
	cb.mutex.Unlock()
}

func (cb *CommandBatch) Len() int {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()
	return len(cb.jobs)
}

// RenderAll draws every queued job onto screen in queue order and empties
// the queue. Jobs without an image are skipped.
func (cb *CommandBatch) RenderAll(screen *ebiten.Image) int {
	cb.mutex.Lock()
	jobs := cb.jobs
	cb.jobs = cb.jobs[:0]
	cb.mutex.Unlock()

	drawn := 0
	var opts ebiten.DrawImageOptions
	for i := range jobs {
		job := &jobs[i]
		if job.Image == nil {
			continue
		}
		opts.GeoM.Reset()
		opts.ColorScale.Reset()
		opts.GeoM.Scale(job.ScaleX, job.ScaleY)
		opts.GeoM.Translate(job.X, job.Y)
		opts.ColorScale.Scale(job.ColorScale.R, job.ColorScale.G, job.ColorScale.B, job.ColorScale.A)
		screen.DrawImage(job.Image, &opts)
		drawn++
	}
	return drawn
}

// Clear discards all queued draws.
func (cb *CommandBatch) Clear() {
	cb.mutex.Lock()
	cb.jobs = cb.jobs[:0]
	cb.mutex.Unlock()
}
