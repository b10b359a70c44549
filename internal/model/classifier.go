// Package model wraps the ONNX runtime session for the waste classifier.
// The model is loaded once at startup and reused for every request.
package model

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/pyrzerkm/Smart-Garbage-Segregation-main/internal/classify"
)

type Classifier struct {
	session      *ort.AdvancedSession
	Metadata     Metadata
	inputTensor  *ort.Tensor[float32]
	outputTensor *ort.Tensor[float32]

	// The session shares one input/output tensor pair across calls, so
	// inference runs are serialized. Everything else stays concurrent.
	mu sync.Mutex
}

func NewClassifier(modelPath, metadataPath string) (*Classifier, error) {
	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("failed to initialize ONNX environment: %w", err)
	}

	metaFile, err := os.ReadFile(metadataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}

	var metadata Metadata
	if err := json.Unmarshal(metaFile, &metadata); err != nil {
		return nil, fmt.Errorf("failed to parse metadata: %w", err)
	}

	if err := validateClasses(metadata.Classes); err != nil {
		return nil, err
	}

	inputShape := ort.NewShape(metadata.InputShape...)
	outputShape := ort.NewShape(metadata.OutputShape...)

	inputTensor, err := ort.NewEmptyTensor[float32](inputShape)
	if err != nil {
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}

	outputTensor, err := ort.NewEmptyTensor[float32](outputShape)
	if err != nil {
		inputTensor.Destroy()
		return nil, fmt.Errorf("failed to create output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(modelPath,
		[]string{"input"}, []string{"output"},
		[]ort.ArbitraryTensor{inputTensor}, []ort.ArbitraryTensor{outputTensor},
		nil)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, fmt.Errorf("failed to create ONNX session: %w", err)
	}

	return &Classifier{
		session:      session,
		Metadata:     metadata,
		inputTensor:  inputTensor,
		outputTensor: outputTensor,
	}, nil
}

// validateClasses checks the exported class list against the fixed label
// set, in model output index order.
func validateClasses(classes []string) error {
	labels := classify.Labels()
	if len(classes) != len(labels) {
		return fmt.Errorf("metadata lists %d classes, expected %d", len(classes), len(labels))
	}
	for i, class := range classes {
		if class != string(labels[i]) {
			return fmt.Errorf("metadata class %d is %q, expected %q", i, class, labels[i])
		}
	}
	return nil
}

// Predict runs inference on preprocessed image data and returns the argmax
// label with its probability.
func (c *Classifier) Predict(inputData []float32) (classify.Label, float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data := c.inputTensor.GetData()
	if len(inputData) != len(data) {
		return "", 0, fmt.Errorf("expected %d input values, got %d", len(data), len(inputData))
	}
	copy(data, inputData)

	if err := c.session.Run(); err != nil {
		return "", 0, fmt.Errorf("inference failed: %w", err)
	}

	outputData := c.outputTensor.GetData()
	if len(outputData) == 0 {
		return "", 0, fmt.Errorf("model produced empty output")
	}

	maxIdx := 0
	maxVal := outputData[0]
	for i, val := range outputData {
		if val > maxVal {
			maxVal = val
			maxIdx = i
		}
	}

	if maxIdx >= len(c.Metadata.Classes) {
		return "", 0, fmt.Errorf("argmax index %d exceeds class list", maxIdx)
	}

	label, err := classify.ParseLabel(c.Metadata.Classes[maxIdx])
	if err != nil {
		return "", 0, err
	}
	return label, float64(maxVal), nil
}

// ImageSize returns the square input size the model expects.
func (c *Classifier) ImageSize() int {
	return c.Metadata.ImageSize
}

func (c *Classifier) Close() {
	if c.inputTensor != nil {
		c.inputTensor.Destroy()
	}
	if c.outputTensor != nil {
		c.outputTensor.Destroy()
	}
	if c.session != nil {
		c.session.Destroy()
	}
	ort.DestroyEnvironment()
}
