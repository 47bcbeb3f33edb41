package vm

// Run drives the dispatch loop described in spec.md §4.1 to completion: it
// steps until pc runs off the end of code, exitFlag is set, or
// DoAsyncWaitFlag is set. The host re-enters Run after servicing a
// DoAsyncWaitFlag pause; clearing that flag is the host's part of the
// servicing, since Run returns at once while it is still set.
func Run(st *State) {
	for st.PC < st.Code.Len() && !st.ExitFlag && !st.DoAsyncWaitFlag {
		step(st)
	}
}

// Step runs exactly one dispatch-loop iteration and reports whether the VM
// is still runnable afterward (pc in range and exitFlag clear) — the
// primitive the interactive stepper in cmd/rvm builds on.
func Step(st *State) bool {
	if st.PC >= st.Code.Len() || st.ExitFlag {
		return false
	}
	step(st)
	return st.PC < st.Code.Len() && !st.ExitFlag
}

// step executes exactly one dispatch-loop iteration.
func step(st *State) {
	ins := st.Code.At(st.PC)
	st.PC++
	// Bump is applied to the live ctxt before the handler runs, so a jump
	// handler's overwrite of ctxt.PC (spec.md §4.1 step 2) and a
	// Push/Fork's read of "the pc to resume at" both see the same
	// live-accurate value.
	st.Ctxt.PC = st.PC

	st.Bytecodes[ins.Op]++
	if st.CurrentMonitor != nil {
		st.CurrentMonitor.RecordOpcode(ins.Op)
	}

	executeInstruction(st, ins)
	runFlagMachine(st)

	if st.Ctxt != nil {
		st.PC = st.Ctxt.PC
		st.Code = st.Ctxt.Code
	}
}
