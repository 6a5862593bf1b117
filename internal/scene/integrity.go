package scene

import (
	"sort"

	"github.com/hungaromakker/battlearena/internal/building"
)

// IntegrityRecheckJob mirrors spec.md §3.5's IntegrityRecheckJob.
type IntegrityRecheckJob struct {
	CooldownS    float32
	PassesLeft   int
	StablePasses int
	BlockIDs     []uint32
}

func passesForDelay(delaySeconds float32) int {
	passes := int(delaySeconds / IntegrityRecheckPassIntervalS)
	if passes < IntegrityMinPasses {
		passes = IntegrityMinPasses
	}
	if passes > IntegrityMaxPasses {
		passes = IntegrityMaxPasses
	}
	return passes
}

func uniqueSortedIDs(ids []uint32) []uint32 {
	set := make(map[uint32]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	out := make([]uint32, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// scheduleIntegrityRecheck enqueues a new job for the given block ids with
// a requested delay; the pass budget is clamped per spec.md §4.10.g.
func (c *Coordinator) scheduleIntegrityRecheck(blockIDs []uint32, delaySeconds float32) {
	if len(blockIDs) == 0 {
		return
	}
	c.integrityJobs = append(c.integrityJobs, &IntegrityRecheckJob{
		CooldownS:  delaySeconds,
		PassesLeft: passesForDelay(delaySeconds),
		BlockIDs:   uniqueSortedIDs(blockIDs),
	})
}

// tickIntegrityJobs advances every job's cooldown, pops and runs ready
// jobs, and retires or re-schedules follow-ups per spec.md §4.10.g.
func (c *Coordinator) tickIntegrityJobs(dt float32) {
	var retained []*IntegrityRecheckJob
	for _, job := range c.integrityJobs {
		job.CooldownS -= dt
		if job.CooldownS > 0 {
			retained = append(retained, job)
			continue
		}
		c.runIntegrityJob(job, &retained)
	}
	c.integrityJobs = retained
}

func (c *Coordinator) runIntegrityJob(job *IntegrityRecheckJob, retained *[]*IntegrityRecheckJob) {
	destroyed := c.recheckIntegrityForBlocks(job.BlockIDs)

	if len(destroyed) == 0 {
		job.StablePasses++
		if job.StablePasses >= IntegrityStablePassesToSleep || job.PassesLeft == 0 {
			return // retire
		}
		job.CooldownS = IntegrityRecheckPassIntervalS
		*retained = append(*retained, job)
		return
	}

	var neighborIDs []uint32
	for _, d := range destroyed {
		c.reinsertAsLooseRubble(d)
		neighborIDs = append(neighborIDs, c.nearbyBlockIDs(d.Position, building.BlockGridSize)...)
	}

	if job.PassesLeft == 0 {
		return
	}

	*retained = append(*retained, &IntegrityRecheckJob{
		CooldownS:    IntegrityRecheckPassIntervalS,
		PassesLeft:   job.PassesLeft - 1,
		StablePasses: 0,
		BlockIDs:     uniqueSortedIDs(append(job.BlockIDs, neighborIDs...)),
	})
}
