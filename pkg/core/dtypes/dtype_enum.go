package dtypes

import "strconv"

// DType is an enum that represents the data type of the elements stored in a device resource.
//
// Values are kept aligned with the numbering used by the other GoMLX dtypes packages (which
// follow XLA's), so a DType can be passed around between backends without translation.
type DType int32

const (
	// InvalidDType is the zero value, used for uninitialized descriptors.
	InvalidDType DType = 0

	// Float16 is the IEEE 754 half-precision float, the "compact" element width used for
	// weights and biases when the operation doesn't calculate in full precision.
	Float16 DType = 10

	// Float32 is the IEEE 754 single-precision float.
	Float32 DType = 11
)

// Aliases.
const (
	F16 = Float16
	F32 = Float32
)

// MapOfNames maps the names (and lower-case aliases) to the DType.
var MapOfNames = map[string]DType{
	"InvalidDType": InvalidDType,
	"Float16":      Float16,
	"Float32":      Float32,
	"F16":          Float16,
	"F32":          Float32,
}

var dtypeNames = map[DType]string{
	InvalidDType: "InvalidDType",
	Float16:      "Float16",
	Float32:      "Float32",
}

// String implements fmt.Stringer.
func (dtype DType) String() string {
	if name, found := dtypeNames[dtype]; found {
		return name
	}
	return "DType(" + strconv.Itoa(int(dtype)) + ")"
}
