package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/tessera/engine/renderer/metadata"
)

/**
 * @brief The Vulkan view of a geometry vertex layout: one interleaved binding,
 * its attributes and the input assembly settings.
 */
type VertexInputDescription struct {
	Binding    vk.VertexInputBindingDescription
	Attributes []vk.VertexInputAttributeDescription
	IndexType  vk.IndexType
	Topology   vk.PrimitiveTopology
	FrontFace  vk.FrontFace
}

/**
 * @brief Translates a vertex layout into Vulkan vertex input descriptions.
 *
 * @param layout The layout of the vertex and index buffers.
 * @param binding The vertex buffer binding index.
 * @return The description, or an error for attribute types Vulkan cannot take as vertex input.
 */
func NewVertexInputDescription(layout metadata.VertexLayout, binding uint32) (*VertexInputDescription, error) {
	desc := &VertexInputDescription{
		Binding: vk.VertexInputBindingDescription{
			Binding:   binding,
			Stride:    layout.Stride,
			InputRate: vk.VertexInputRateVertex, // Move to next data entry for each vertex.
		},
		Attributes: make([]vk.VertexInputAttributeDescription, 0, len(layout.Attributes)),
	}

	for _, attr := range layout.Attributes {
		format, err := attributeFormat(attr.Type)
		if err != nil {
			return nil, fmt.Errorf("attribute '%s': %w", attr.Name, err)
		}
		if attr.Offset+attr.Type.Size() > layout.Stride {
			return nil, fmt.Errorf("attribute '%s' ends at byte %d, past the stride %d", attr.Name, attr.Offset+attr.Type.Size(), layout.Stride)
		}
		desc.Attributes = append(desc.Attributes, vk.VertexInputAttributeDescription{
			Location: attr.Location,
			Binding:  binding,
			Format:   format,
			Offset:   attr.Offset,
		})
	}

	switch layout.IndexFormat {
	case metadata.IndexFormatUint32:
		desc.IndexType = vk.IndexTypeUint32
	default:
		return nil, fmt.Errorf("unsupported index format %d", layout.IndexFormat)
	}

	switch layout.Topology {
	case metadata.PrimitiveTopologyTriangleList:
		desc.Topology = vk.PrimitiveTopologyTriangleList
	default:
		return nil, fmt.Errorf("unsupported topology %d", layout.Topology)
	}

	switch layout.FrontFace {
	case metadata.FrontFaceCounterClockwise:
		desc.FrontFace = vk.FrontFaceCounterClockwise
	default:
		return nil, fmt.Errorf("unsupported front face %d", layout.FrontFace)
	}

	return desc, nil
}

// VertexInputState returns the pipeline vertex input state for the description.
func (d *VertexInputDescription) VertexInputState() vk.PipelineVertexInputStateCreateInfo {
	return vk.PipelineVertexInputStateCreateInfo{
		SType:                           vk.StructureTypePipelineVertexInputStateCreateInfo,
		VertexBindingDescriptionCount:   1,
		PVertexBindingDescriptions:      []vk.VertexInputBindingDescription{d.Binding},
		VertexAttributeDescriptionCount: uint32(len(d.Attributes)),
		PVertexAttributeDescriptions:    d.Attributes,
	}
}

// InputAssemblyState returns the pipeline input assembly state for the description.
func (d *VertexInputDescription) InputAssemblyState() vk.PipelineInputAssemblyStateCreateInfo {
	return vk.PipelineInputAssemblyStateCreateInfo{
		SType:                  vk.StructureTypePipelineInputAssemblyStateCreateInfo,
		Topology:               d.Topology,
		PrimitiveRestartEnable: vk.False,
	}
}

func attributeFormat(t metadata.ShaderAttributeType) (vk.Format, error) {
	switch t {
	case metadata.ShaderAttribTypeFloat32:
		return vk.FormatR32Sfloat, nil
	case metadata.ShaderAttribTypeFloat32_2:
		return vk.FormatR32g32Sfloat, nil
	case metadata.ShaderAttribTypeFloat32_3:
		return vk.FormatR32g32b32Sfloat, nil
	case metadata.ShaderAttribTypeFloat32_4:
		return vk.FormatR32g32b32a32Sfloat, nil
	case metadata.ShaderAttribTypeInt8:
		return vk.FormatR8Sint, nil
	case metadata.ShaderAttribTypeUint8:
		return vk.FormatR8Uint, nil
	case metadata.ShaderAttribTypeInt16:
		return vk.FormatR16Sint, nil
	case metadata.ShaderAttribTypeUint16:
		return vk.FormatR16Uint, nil
	case metadata.ShaderAttribTypeInt32:
		return vk.FormatR32Sint, nil
	case metadata.ShaderAttribTypeUint32:
		return vk.FormatR32Uint, nil
	}
	// mat4 takes four locations and is not a single vertex attribute.
	return vk.FormatUndefined, fmt.Errorf("no vertex format for attribute type %s", t)
}
