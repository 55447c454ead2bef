package metadata

import "fmt"

/** @brief Available attribute types. */
type ShaderAttributeType uint

const (
	ShaderAttribTypeFloat32   ShaderAttributeType = 0
	ShaderAttribTypeFloat32_2 ShaderAttributeType = 1
	ShaderAttribTypeFloat32_3 ShaderAttributeType = 2
	ShaderAttribTypeFloat32_4 ShaderAttributeType = 3
	ShaderAttribTypeMatrix4   ShaderAttributeType = 4
	ShaderAttribTypeInt8      ShaderAttributeType = 5
	ShaderAttribTypeUint8     ShaderAttributeType = 6
	ShaderAttribTypeInt16     ShaderAttributeType = 7
	ShaderAttribTypeUint16    ShaderAttributeType = 8
	ShaderAttribTypeInt32     ShaderAttributeType = 9
	ShaderAttribTypeUint32    ShaderAttributeType = 10
)

var shaderAttributeTypeNames = map[ShaderAttributeType]string{
	ShaderAttribTypeFloat32:   "f32",
	ShaderAttribTypeFloat32_2: "vec2",
	ShaderAttribTypeFloat32_3: "vec3",
	ShaderAttribTypeFloat32_4: "vec4",
	ShaderAttribTypeMatrix4:   "mat4",
	ShaderAttribTypeInt8:      "i8",
	ShaderAttribTypeUint8:     "u8",
	ShaderAttribTypeInt16:     "i16",
	ShaderAttribTypeUint16:    "u16",
	ShaderAttribTypeInt32:     "i32",
	ShaderAttribTypeUint32:    "u32",
}

func (t ShaderAttributeType) String() string {
	if s, ok := shaderAttributeTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("ShaderAttributeType(%d)", uint(t))
}

func ShaderAttributeTypeFromString(s string) (ShaderAttributeType, error) {
	for t, name := range shaderAttributeTypeNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("string %s is not a valid ShaderAttribType", s)
}

// Size returns the size in bytes of one attribute of this type.
func (t ShaderAttributeType) Size() uint32 {
	switch t {
	case ShaderAttribTypeInt8, ShaderAttribTypeUint8:
		return 1
	case ShaderAttribTypeInt16, ShaderAttribTypeUint16:
		return 2
	case ShaderAttribTypeFloat32, ShaderAttribTypeInt32, ShaderAttribTypeUint32:
		return 4
	case ShaderAttribTypeFloat32_2:
		return 8
	case ShaderAttribTypeFloat32_3:
		return 12
	case ShaderAttribTypeFloat32_4:
		return 16
	case ShaderAttribTypeMatrix4:
		return 64
	}
	return 0
}

// ComponentCount returns how many scalar components the type holds.
func (t ShaderAttributeType) ComponentCount() uint32 {
	switch t {
	case ShaderAttribTypeFloat32_2:
		return 2
	case ShaderAttribTypeFloat32_3:
		return 3
	case ShaderAttribTypeFloat32_4:
		return 4
	case ShaderAttribTypeMatrix4:
		return 16
	}
	return 1
}
