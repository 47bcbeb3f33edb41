package vm

import "github.com/rosette-vm/rvm/ob"

// runFlagMachine implements spec.md §4.2's post-handler reconciliation.
// Ordering is load-bearing: transmit, then return, then error recovery,
// then strand switch.
func runFlagMachine(st *State) {
	if st.DoXmitFlag {
		doXmit(st)
	}
	if st.DoRtnFlag {
		doRtn(st)
		st.DoRtnFlag = false
	}
	if st.VMErrorFlag {
		recovered := false
		if st.ErrorPolicy == ErrorPolicyRecover && st.OnVMError != nil {
			recovered = st.OnVMError(st, st.Ctxt)
		}
		if !recovered {
			st.DoNextThreadFlag = true
		}
		st.VMErrorFlag = false
	}
	if st.DoNextThreadFlag {
		exit := getNextStrand(st)
		st.DoNextThreadFlag = false
		if exit {
			st.ExitFlag = true
		}
	}
}

// doXmit dispatches ctxt.trgt: StdOprn targets invoke their own dispatch
// hook, anything else is a pass-through recorded in the debug trail —
// spec.md §4.5/§9's documented limitation (only StdOprn is implemented).
// doXmit owns clearing doXmitFlag; it is the one-shot consumer spec.md §3
// describes.
func doXmit(st *State) {
	defer func() { st.DoXmitFlag = false }()

	trgt := st.Ctxt.Trgt
	so, ok := ob.StdOprnOf(trgt)
	if !ok {
		st.AppendDebug("doXmit: non-StdOprn target pass-through (" + trgt.Tag().String() + ")")
		if st.XmitData.Next {
			st.DoNextThreadFlag = true
		}
		return
	}

	result, err := so.Dispatcher.Dispatch(st)
	if err != nil {
		st.AppendDebug("doXmit: dispatch error: " + err.Error())
		st.VMErrorFlag = true
		return
	}
	if resultOb, isOb := result.(ob.Ob); isOb && resultOb.Is(ob.OTsysval) {
		handleException(st, resultOb, 0)
	}
	if st.XmitData.Next {
		st.DoNextThreadFlag = true
	}
}

// doRtn invokes the equivalent of Ctxt.ret(ctxt.rslt): store rslt into the
// parent per ctxt.tag, then install the parent as the running ctxt.
//
// spec.md §4.2 reads: "if doRtnFlag is still set by the return itself, set
// doNextThreadFlag" — but doRtnFlag is unconditionally cleared by the flag
// machine right after doRtn runs, so that flag can never still be "set" by
// the time this sentence would apply. The only surviving piece of state a
// return can use to ask for a thread switch is the `n` operand the Rtn
// opcode captured into doRtnData. We take that as the intended reading:
// doRtn consults state.DoRtnData, not state.DoRtnFlag, to decide whether to
// request a strand switch.
func doRtn(st *State) {
	ctxt := st.Ctxt
	parent := ctxt.Parent
	if parent == nil {
		st.VMErrorFlag = true
		return
	}
	sr := Store(ctxt.Tag, parent, st.GlobalEnv, ctxt.Rslt)
	switch sr.Outcome {
	case StoreFail:
		st.VMErrorFlag = true
		return
	case StoreCtxt:
		st.Ctxt = sr.NewCtxt
	case StoreGlobal:
		st.GlobalEnv = sr.NewGlobal
		st.Ctxt = parent
	}
	if st.DoRtnData {
		st.DoNextThreadFlag = true
	}
}
