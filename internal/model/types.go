package model

// Metadata describes the exported ONNX model. It is written next to the
// model file at export time and read once at startup.
type Metadata struct {
	InputShape  []int64  `json:"input_shape"`
	OutputShape []int64  `json:"output_shape"`
	Classes     []string `json:"classes"`
	ImageSize   int      `json:"image_size"`
}
