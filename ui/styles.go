package ui

import (
	jcommon "github.com/tranvictor/ensreader/common"
)

// StyledName renders the name found for an address: green when known,
// yellow "unknown" otherwise.
func StyledName(addr jcommon.Address) StyledText {
	if !addr.Known() {
		return StyledText{Text: jcommon.UnknownDesc, Severity: SeverityWarn}
	}
	return StyledText{Text: addr.Desc, Severity: SeveritySuccess}
}
