package repository

import (
	"context"
	"crypto/tls"
	"fmt"

	"github.com/google/uuid"
	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	"github.com/doubletutu/portfolio-api/internal/domain"
)

const defaultVectorDimension = 1536

// chunkIDNamespace maps deterministic chunk keys ("<articleId>-chunk-<n>") to
// the UUID point ids Qdrant requires. Same key, same UUID, so re-indexing an
// article overwrites its previous points.
var chunkIDNamespace = uuid.MustParse("9e4ba7e2-5b3f-4c44-9a1d-3f62a8c7d915")

// QdrantConnectionConfig holds configuration for Qdrant connection.
type QdrantConnectionConfig struct {
	Host            string
	Port            int
	Collection      string
	APIKey          string // Qdrant Cloud API Key (enables TLS automatically)
	UseTLS          bool   // Explicitly enable TLS without API Key
	VectorDimension int
}

// apiKeyInterceptor creates a unary interceptor that adds API key to metadata
func apiKeyInterceptor(apiKey string) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		ctx = metadata.AppendToOutgoingContext(ctx, "api-key", apiKey)
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// QdrantStore implements VectorStore against a self-hosted or cloud Qdrant
// instance over gRPC. Kept as an alternative backend to the Upstash default.
type QdrantStore struct {
	conn            *grpc.ClientConn
	pointsClient    pb.PointsClient
	collectClient   pb.CollectionsClient
	collectionName  string
	vectorDimension int
}

// NewQdrantStore creates a new QdrantStore.
// Supports both local Qdrant (insecure) and Qdrant Cloud (TLS + API Key).
func NewQdrantStore(cfg *QdrantConnectionConfig) (*QdrantStore, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	vectorDimension := cfg.VectorDimension
	if vectorDimension <= 0 {
		vectorDimension = defaultVectorDimension
	}

	var opts []grpc.DialOption

	// TLS is enabled if: APIKey is set OR UseTLS is explicitly true
	useTLS := cfg.UseTLS || cfg.APIKey != ""

	if useTLS {
		tlsConfig := &tls.Config{
			MinVersion: tls.VersionTLS13,
		}
		creds := credentials.NewTLS(tlsConfig)
		opts = append(opts, grpc.WithTransportCredentials(creds))

		if cfg.APIKey != "" {
			opts = append(opts, grpc.WithUnaryInterceptor(apiKeyInterceptor(cfg.APIKey)))
		}
	} else {
		opts = append(opts, grpc.WithTransportCredentials(insecure.NewCredentials()))
	}

	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to qdrant: %w", err)
	}

	return &QdrantStore{
		conn:            conn,
		pointsClient:    pb.NewPointsClient(conn),
		collectClient:   pb.NewCollectionsClient(conn),
		collectionName:  cfg.Collection,
		vectorDimension: vectorDimension,
	}, nil
}

// Close closes the gRPC connection.
func (s *QdrantStore) Close() error {
	return s.conn.Close()
}

// EnsureCollection creates the collection if it doesn't exist.
func (s *QdrantStore) EnsureCollection(ctx context.Context) error {
	_, err := s.collectClient.Get(ctx, &pb.GetCollectionInfoRequest{
		CollectionName: s.collectionName,
	})
	if err == nil {
		return nil // Collection exists
	}

	_, err = s.collectClient.Create(ctx, &pb.CreateCollection{
		CollectionName: s.collectionName,
		VectorsConfig: &pb.VectorsConfig{
			Config: &pb.VectorsConfig_Params{
				Params: &pb.VectorParams{
					Size:     uint64(s.vectorDimension),
					Distance: pb.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}
	return nil
}

func chunkPointID(chunkKey string) *pb.PointId {
	uid := uuid.NewSHA1(chunkIDNamespace, []byte(chunkKey))
	return &pb.PointId{
		PointIdOptions: &pb.PointId_Uuid{Uuid: uid.String()},
	}
}

// Upsert inserts or overwrites the given chunk documents in one batch.
func (s *QdrantStore) Upsert(ctx context.Context, docs []domain.VectorDocument) error {
	if len(docs) == 0 {
		return nil
	}

	points := make([]*pb.PointStruct, len(docs))
	for i, doc := range docs {
		points[i] = &pb.PointStruct{
			Id: chunkPointID(doc.ID),
			Vectors: &pb.Vectors{
				VectorsOptions: &pb.Vectors_Vector{
					Vector: &pb.Vector{Data: doc.Vector},
				},
			},
			Payload: map[string]*pb.Value{
				"chunk_key":     {Kind: &pb.Value_StringValue{StringValue: doc.ID}},
				"article_id":    {Kind: &pb.Value_StringValue{StringValue: doc.Metadata.ArticleID}},
				"article_title": {Kind: &pb.Value_StringValue{StringValue: doc.Metadata.ArticleTitle}},
				"chunk_index":   {Kind: &pb.Value_IntegerValue{IntegerValue: int64(doc.Metadata.ChunkIndex)}},
				"text":          {Kind: &pb.Value_StringValue{StringValue: doc.Metadata.Text}},
			},
		}
	}

	_, err := s.pointsClient.Upsert(ctx, &pb.UpsertPoints{
		CollectionName: s.collectionName,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert points: %w", err)
	}
	return nil
}

// Query performs a vector similarity search with payloads enabled.
func (s *QdrantStore) Query(ctx context.Context, vector []float32, topK int) ([]domain.VectorMatch, error) {
	resp, err := s.pointsClient.Search(ctx, &pb.SearchPoints{
		CollectionName: s.collectionName,
		Vector:         vector,
		Limit:          uint64(topK),
		WithPayload: &pb.WithPayloadSelector{
			SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	matches := make([]domain.VectorMatch, len(resp.Result))
	for i, scored := range resp.Result {
		match := domain.VectorMatch{
			ID:       scored.Id.GetUuid(),
			Score:    scored.Score,
			Metadata: parseChunkPayload(scored.Payload),
		}
		// Prefer the deterministic chunk key over the raw point UUID
		if key := scored.Payload["chunk_key"].GetStringValue(); key != "" {
			match.ID = key
		}
		matches[i] = match
	}
	return matches, nil
}

func parseChunkPayload(payload map[string]*pb.Value) domain.ChunkMetadata {
	var meta domain.ChunkMetadata
	if payload == nil {
		return meta
	}
	if v, ok := payload["article_id"]; ok {
		meta.ArticleID = v.GetStringValue()
	}
	if v, ok := payload["article_title"]; ok {
		meta.ArticleTitle = v.GetStringValue()
	}
	if v, ok := payload["chunk_index"]; ok {
		meta.ChunkIndex = int(v.GetIntegerValue())
	}
	if v, ok := payload["text"]; ok {
		meta.Text = v.GetStringValue()
	}
	return meta
}

// Delete removes the points for the given chunk keys.
func (s *QdrantStore) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	pointIDs := make([]*pb.PointId, len(ids))
	for i, id := range ids {
		pointIDs[i] = chunkPointID(id)
	}

	_, err := s.pointsClient.Delete(ctx, &pb.DeletePoints{
		CollectionName: s.collectionName,
		Points: &pb.PointsSelector{
			PointsSelectorOneOf: &pb.PointsSelector_Points{
				Points: &pb.PointsIdsList{Ids: pointIDs},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete points: %w", err)
	}
	return nil
}
