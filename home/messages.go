package home

const (
	MsgSearchQuery            = "%s searched %q (%s)"
	MsgSearchPromptLookupFail = "fetch prompt message: %w"
	MsgSearchSessionFail      = "open session for prompt %s: %w"
	MsgSnailsNoFacts          = "No snail facts configured"

	MsgSearchWithdrawEditFail   = "Disabling abandoned prompt failed: %v"
	MsgSearchWithdrawDeleteFail = "Deleting abandoned prompt failed: %v"
)
