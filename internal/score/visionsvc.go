package score

// #region imports
import (
	"context"
	"fmt"
	"os"

	pb "github.com/banyan-grid/siteproof/gen/visionpb"
	"github.com/banyan-grid/siteproof/internal/detect"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

// #endregion

// #region client-struct
// VisionClient wraps the gRPC connection to the vision inference service.
// The service credential travels as request metadata, supplied by the caller
// from the environment, never baked into source.
type VisionClient struct {
	conn         *grpc.ClientConn
	client       pb.VisionServiceClient
	apiKey       string
	referenceSet string
}
// #endregion client-struct

// #region constructor
// NewVisionClient connects to the vision inference gRPC server.
func NewVisionClient(addr, apiKey, referenceSet string) (*VisionClient, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", addr, err)
	}
	return &VisionClient{
		conn:         conn,
		client:       pb.NewVisionServiceClient(conn),
		apiKey:       apiKey,
		referenceSet: referenceSet,
	}, nil
}

// NewVisionClientWithService creates a VisionClient with an injected service
// implementation. Used for testing without a real gRPC connection.
func NewVisionClientWithService(svc pb.VisionServiceClient) *VisionClient {
	return &VisionClient{client: svc}
}
// #endregion constructor

// #region close
// Close shuts down the gRPC connection.
func (c *VisionClient) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}
// #endregion close

// #region similarity
// Similarity scores raw image bytes against the configured reference set.
func (c *VisionClient) Similarity(ctx context.Context, imageID string, imageData []byte) (float64, error) {
	resp, err := c.client.Similarity(c.withAuth(ctx), &pb.SimilarityRequest{
		ImageId:      imageID,
		ImageData:    imageData,
		ReferenceSet: c.referenceSet,
	})
	if err != nil {
		return 0, fmt.Errorf("similarity rpc: %w", err)
	}
	return resp.Score, nil
}
// #endregion similarity

// #region detect
// Detect runs object detection on raw image bytes.
func (c *VisionClient) Detect(ctx context.Context, imageID string, imageData []byte, minConfidence float64) ([]detect.Detection, error) {
	resp, err := c.client.Detect(c.withAuth(ctx), &pb.DetectRequest{
		ImageId:       imageID,
		ImageData:     imageData,
		MinConfidence: minConfidence,
	})
	if err != nil {
		return nil, fmt.Errorf("detect rpc: %w", err)
	}

	dets := make([]detect.Detection, len(resp.Detections))
	for i, d := range resp.Detections {
		dets[i] = detect.Detection{
			Class:      d.Class,
			Confidence: d.Confidence,
		}
		copy(dets[i].BBox[:], d.Bbox)
	}
	return dets, nil
}
// #endregion detect

// #region produce
// Produce implements Producer by reading the image file and scoring it
// against the reference set.
func (c *VisionClient) Produce(ctx context.Context, img Ref) (float64, error) {
	data, err := os.ReadFile(img.Path)
	if err != nil {
		return 0, fmt.Errorf("read image %s: %w", img.Path, err)
	}
	return c.Similarity(ctx, img.ID, data)
}
// #endregion produce

// #region auth
// withAuth attaches the API key header when one is configured.
func (c *VisionClient) withAuth(ctx context.Context) context.Context {
	if c.apiKey == "" {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, "x-api-key", c.apiKey)
}
// #endregion auth
