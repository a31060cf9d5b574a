// Package lambda dispatches render jobs to AWS Lambda functions. The
// function name is supplied per call by the resolver; this adapter holds no
// job state of its own.
package lambda

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awslambda "github.com/aws/aws-sdk-go-v2/service/lambda"
	lambdatypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"

	"scenecast/internal/ports"
)

type Client struct {
	fn *awslambda.Client
}

func NewClient(fn *awslambda.Client) *Client {
	return &Client{fn: fn}
}

func (c *Client) Backend() string { return "lambda" }

type startPayload struct {
	Type             string                     `json:"type"`
	Width            float64                    `json:"width"`
	Height           float64                    `json:"height"`
	Codec            string                     `json:"codec"`
	OutName          string                     `json:"outName"`
	DownloadBehavior ports.DownloadBehavior     `json:"downloadBehavior"`
	Tracks           []json.RawMessage          `json:"tracks"`
	Items            map[string]json.RawMessage `json:"items"`
	Assets           json.RawMessage            `json:"assets,omitempty"`
	FontInfos        []ports.FontRef            `json:"fontInfos"`
}

type startResponse struct {
	BucketName string `json:"bucketName"`
	RenderID   string `json:"renderId"`
}

type statusPayload struct {
	Type       string `json:"type"`
	BucketName string `json:"bucketName"`
	RenderID   string `json:"renderId"`
}

type statusResponse struct {
	Done                  bool                 `json:"done"`
	FatalErrorEncountered bool                 `json:"fatalErrorEncountered"`
	Errors                []ports.BackendError `json:"errors"`
	OverallProgress       float64              `json:"overallProgress"`
	OutputFile            string               `json:"outputFile"`
	OutputSizeInBytes     int64                `json:"outputSizeInBytes"`
	OutKey                string               `json:"outKey"`
	RenderMetadata        *struct {
		DownloadBehavior *ports.DownloadBehavior `json:"downloadBehavior"`
	} `json:"renderMetadata"`
}

func (c *Client) StartRender(ctx context.Context, in ports.StartRenderInput) (ports.StartRenderOutput, error) {
	payload := startPayload{
		Type:             "start",
		Width:            in.Width,
		Height:           in.Height,
		Codec:            in.Codec,
		OutName:          in.OutName,
		DownloadBehavior: in.Download,
		Tracks:           in.Tracks,
		Items:            in.Items,
		Assets:           in.Assets,
		FontInfos:        in.Fonts,
	}

	var decoded startResponse
	if err := c.invoke(ctx, in.FunctionName, payload, &decoded); err != nil {
		return ports.StartRenderOutput{}, err
	}
	if decoded.BucketName == "" || decoded.RenderID == "" {
		return ports.StartRenderOutput{}, fmt.Errorf("lambda start: incomplete handle in response")
	}

	return ports.StartRenderOutput{BucketName: decoded.BucketName, RenderID: decoded.RenderID}, nil
}

func (c *Client) RenderProgress(ctx context.Context, in ports.ProgressInput) (ports.ProgressReport, error) {
	payload := statusPayload{
		Type:       "status",
		BucketName: in.BucketName,
		RenderID:   in.RenderID,
	}

	var decoded statusResponse
	if err := c.invoke(ctx, in.FunctionName, payload, &decoded); err != nil {
		return ports.ProgressReport{}, err
	}

	report := ports.ProgressReport{
		Done:              decoded.Done,
		FatalError:        decoded.FatalErrorEncountered,
		Errors:            decoded.Errors,
		OverallProgress:   decoded.OverallProgress,
		OutputFile:        decoded.OutputFile,
		OutputSizeInBytes: decoded.OutputSizeInBytes,
		OutKey:            decoded.OutKey,
	}
	if decoded.RenderMetadata != nil {
		report.Download = decoded.RenderMetadata.DownloadBehavior
	}
	return report, nil
}

func (c *Client) invoke(ctx context.Context, functionName string, payload any, out any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("lambda invoke: encode payload: %w", err)
	}

	resp, err := c.fn.Invoke(ctx, &awslambda.InvokeInput{
		FunctionName:   aws.String(functionName),
		InvocationType: lambdatypes.InvocationTypeRequestResponse,
		Payload:        raw,
	})
	if err != nil {
		return fmt.Errorf("lambda invoke %s: %w", functionName, err)
	}
	if resp.FunctionError != nil {
		return fmt.Errorf("lambda invoke %s: function error: %s",
			functionName, strings.TrimSpace(string(resp.Payload)))
	}

	if err := json.Unmarshal(resp.Payload, out); err != nil {
		return fmt.Errorf("lambda invoke %s: decode response: %w", functionName, err)
	}
	return nil
}
