package domain

// Query parameters understood by the page.
const (
	// ParamAlgorithm selects the registered visualizer.
	ParamAlgorithm = "algorithm"
	// ParamDebug enables debug logging when non-empty.
	ParamDebug = "debug"
)

// Control classes the coordination layer expects inside a container.
// The misspelled "psuedoCode" is kept because page templates already use it.
const (
	ClassAlgorithmSelector = "algorithmSelector"
	ClassInsertSelect      = "insertSelect"
	ClassInsertField       = "insertField"
	ClassInsertSubmit      = "insertSubmit"
	ClassFindField         = "findField"
	ClassFindSubmit        = "findSubmit"
	ClassDeleteField       = "deleteField"
	ClassDeleteSubmit      = "deleteSubmit"
	ClassDeleteMinSubmit   = "deleteMinSubmit"
	ClassPrintSubmit       = "printSubmit"
	ClassClearSubmit       = "clearSubmit"
	ClassShowNullNodes     = "showNullNodes"
	ClassSortSubmit        = "sortSubmit"
	ClassPseudoCode        = "psuedoCode"
	ClassRunner            = "runner"
)

// StandardControls lists every control class a full toolbar renders.
var StandardControls = []string{
	ClassAlgorithmSelector,
	ClassInsertSelect,
	ClassInsertField,
	ClassInsertSubmit,
	ClassFindField,
	ClassFindSubmit,
	ClassDeleteField,
	ClassDeleteSubmit,
	ClassDeleteMinSubmit,
	ClassPrintSubmit,
	ClassClearSubmit,
	ClassShowNullNodes,
	ClassSortSubmit,
	ClassPseudoCode,
	ClassRunner,
}

// Cookie names persisted by the toolbar.
const (
	CookieShowNullNodes = "showNullNodes"
	CookieStepDelay     = "stepDelay"
)
