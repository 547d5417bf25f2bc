// Package protocol implements the remote-control wire contract: numbered
// transactions carrying positional parcels, a service-side stub that
// dispatches them, a connectivity gate, and a client proxy.
//
// A request parcel for a user code starts with the interface token (the
// Descriptor string) followed by the arguments. A reply starts with an
// exception header: int32 0 for success followed by the result, or a
// non-zero exception code followed by a message string.
package protocol

import "fmt"

// Descriptor is the interface token callers must present.
const Descriptor = "com.ai.assistance.aries.provider.IAccessibilityProvider"

// Code is a transaction code.
type Code uint32

// Reserved transaction codes.
const (
	FirstCallTransaction Code = 0x00000001
	LastCallTransaction  Code = 0x00ffffff

	// InterfaceTransaction ("_NTF") replies with the bare Descriptor.
	InterfaceTransaction Code = 0x5f4e5446
	// PingTransaction ("_PNG") replies with an empty parcel.
	PingTransaction Code = 0x5f504e47
)

// Operation codes. These are part of the wire contract and must not be
// renumbered.
const (
	OpGetUIHierarchy         Code = 1
	OpPerformClick           Code = 2
	OpPerformLongPress       Code = 3
	OpPerformGlobalAction    Code = 4
	OpPerformSwipe           Code = 5
	OpFindFocusedNodeID      Code = 6
	OpSetTextOnNode          Code = 7
	OpTakeScreenshot         Code = 8
	OpIsConnected            Code = 9
	OpGetCurrentActivityName Code = 10
)

var opNames = map[Code]string{
	OpGetUIHierarchy:         "getUiHierarchy",
	OpPerformClick:           "performClick",
	OpPerformLongPress:       "performLongPress",
	OpPerformGlobalAction:    "performGlobalAction",
	OpPerformSwipe:           "performSwipe",
	OpFindFocusedNodeID:      "findFocusedNodeId",
	OpSetTextOnNode:          "setTextOnNode",
	OpTakeScreenshot:         "takeScreenshot",
	OpIsConnected:            "isConnected",
	OpGetCurrentActivityName: "getCurrentActivityName",
	InterfaceTransaction:     "interfaceTransaction",
	PingTransaction:          "ping",
}

func (c Code) String() string {
	if name, ok := opNames[c]; ok {
		return name
	}
	return fmt.Sprintf("code(%#x)", uint32(c))
}

// IsUserCode reports whether c is in the range that requires the
// interface token.
func (c Code) IsUserCode() bool {
	return c >= FirstCallTransaction && c <= LastCallTransaction
}

// Exception codes carried in reply headers.
const (
	ExNone            int32 = 0
	ExSecurity        int32 = -1
	ExBadParcelable   int32 = -2
	ExIllegalArgument int32 = -3
	ExNullPointer     int32 = -4
	ExIllegalState    int32 = -5
	ExUnsupportedOp   int32 = -7
	ExServiceSpecific int32 = -8
)

var exceptionNames = map[int32]string{
	ExSecurity:        "SecurityException",
	ExBadParcelable:   "BadParcelableException",
	ExIllegalArgument: "IllegalArgumentException",
	ExNullPointer:     "NullPointerException",
	ExIllegalState:    "IllegalStateException",
	ExUnsupportedOp:   "UnsupportedOperationException",
	ExServiceSpecific: "ServiceSpecificException",
}

// ExceptionName returns a readable name for an exception code.
func ExceptionName(code int32) string {
	if name, ok := exceptionNames[code]; ok {
		return name
	}
	return fmt.Sprintf("exception(%d)", code)
}
