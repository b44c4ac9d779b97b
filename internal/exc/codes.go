package exc

const (
	CodeUnknownFatal                  = "W0000"
	CodeFileNotFound                  = "W0001"
	CodeUnsuportedFileSystemOperation = "W0002"
	CodeUnsupportedFileFormat         = "W0003"
	CodeUnexpectedEOF                 = "W0004"
	CodeSyntaxError                   = "W0005"
	CodeDuplicateIdentifier           = "W0006"
	CodeUnknownIdentifier             = "W0007"
	CodeInvalidNullableNesting        = "W0008"
	CodeExtendedAttributeViolation    = "W0009"
	CodeDuplicateQualifier            = "W0010"
	CodeCyclicForwarding              = "W0011"
	CodeReservedIdentifier            = "W0012"
	CodeConfigurationMismatch         = "W0013"
	CodeImageVersionMismatch          = "W0014"
	CodeInvalidNumber                 = "W0015"
	CodeSessionState                  = "W0016"
	CodePermissionDenied              = "W0017"
)

const (
	CodeEOF = "_EOF_"
)

var (
	defaultNonFatal = map[string]bool{}
)
