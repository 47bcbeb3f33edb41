package vm

import "github.com/rosette-vm/rvm/monitor"

// Strand scheduling — spec.md §4.3. Strands run to their next yield point;
// ordering is FIFO on strandPool with newly-forked strands prepended
// (Fork in control.go head-inserts; ScheduleStrand appends).

// getNextStrand installs the next ready strand, waking sleepers en masse
// when strandPool is empty. It reports exit=true when there is no work left
// at all (empty pools, no outstanding async signals).
func getNextStrand(st *State) (exit bool) {
	if len(st.StrandPool) > 0 {
		head := st.StrandPool[0]
		st.StrandPool = st.StrandPool[1:]
		installStrand(head, st)
		return false
	}
	return tryAwakeSleepingStrand(st)
}

// tryAwakeSleepingStrand implements the three-way branch spec.md §4.3
// describes for an empty strandPool.
func tryAwakeSleepingStrand(st *State) (exit bool) {
	if len(st.SleeperPool) == 0 {
		if st.Nsigs == 0 {
			return true
		}
		st.DoAsyncWaitFlag = true
		return false
	}
	sleepers := st.SleeperPool
	st.SleeperPool = nil
	for _, s := range sleepers {
		s.ScheduleStrand(st)
	}
	head := st.StrandPool[0]
	st.StrandPool = st.StrandPool[1:]
	installStrand(head, st)
	return false
}

// installStrand switches the monitor first (if the incoming strand carries
// a different one), then installs the strand's execution record.
func installStrand(strand *Ctxt, st *State) {
	if strand.Monitor != st.CurrentMonitor {
		installMonitor(strand.Monitor, st)
	}
	installCtxt(strand, st)
}

// installMonitor stops the outgoing monitor, folds its object counts into
// the VM-wide ObCounts total, then starts the incoming one. Opcode counts
// are not folded: step already bumps State.Bytecodes on every dispatch.
// The incoming monitor keeps its own counters unchanged.
func installMonitor(next *monitor.Monitor, st *State) {
	if st.CurrentMonitor != nil {
		st.CurrentMonitor.Stop()
		for kind, n := range st.CurrentMonitor.ObCounts() {
			st.ObCounts[kind] += n
		}
	}
	st.CurrentMonitor = next
	st.Debug = next.Tracing
	next.Start()
}

// installCtxt synchronizes the outgoing strand's pc back into its own Ctxt
// before swapping in the incoming one. The reference VM only ever
// describes copying the incoming strand's pc into state.pc; without this
// step a strand parked mid-flight (e.g. by Fork-then-Nxt while another
// handler still holds the old `ctxt` pointer) would resume from whatever pc
// it had when it was last forked rather than where it actually left off.
// Filled in here as a correctness gap, not a behavior change against any of
// spec.md §8's scenarios.
func installCtxt(strand *Ctxt, st *State) {
	if st.Ctxt != nil {
		st.Ctxt.PC = st.PC
	}
	st.Ctxt = strand
	st.Code = strand.Code
	st.PC = strand.PC
}
