package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/rescuekit/tokend/domain"
)

// OrgCredentialRepositoryMongo implements domain.OrgCredentialRepository
// using MongoDB. The issuance path only reads; Upsert exists for
// provisioning and rotation tooling.
type OrgCredentialRepositoryMongo struct {
	collection *mongo.Collection
}

// NewOrgCredentialRepositoryMongo creates the repository and ensures the
// collection's indexes.
func NewOrgCredentialRepositoryMongo(db *mongo.Database) (*OrgCredentialRepositoryMongo, error) {
	repo := &OrgCredentialRepositoryMongo{
		collection: db.Collection(OrgCredentialsCollection),
	}

	// _id is the org id; the unique index enforces the at-most-one-credential
	// invariant at the storage layer.
	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := repo.collection.Indexes().CreateMany(ctx, indexModels); err != nil {
		log.Error().Err(err).Msg("Failed to create indexes for org_credentials collection")
		return nil, err
	}
	return repo, nil
}

// GetByOrgID implements domain.OrgCredentialRepository.
func (r *OrgCredentialRepositoryMongo) GetByOrgID(ctx context.Context, orgID string) (*domain.OrgCredential, error) {
	var cred domain.OrgCredential
	err := r.collection.FindOne(ctx, bson.M{"_id": orgID}).Decode(&cred)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCredentialNotFound
		}
		log.Error().Err(err).Str("org_id", orgID).Msg("Error retrieving org credential from MongoDB")
		return nil, err
	}
	return &cred, nil
}

// Upsert stores or replaces the credential for an organization.
func (r *OrgCredentialRepositoryMongo) Upsert(ctx context.Context, cred *domain.OrgCredential) error {
	if cred.OrgID == "" || cred.AccessCode == "" {
		return errors.New("org id and access code are required")
	}
	cred.UpdatedAt = time.Now()

	filter := bson.M{"_id": cred.OrgID}
	update := bson.M{"$set": bson.M{
		"access_code": cred.AccessCode,
		"updated_at":  cred.UpdatedAt,
	}}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.UpdateOne().SetUpsert(true))
	if err != nil {
		log.Error().Err(err).Str("org_id", cred.OrgID).Msg("Error upserting org credential in MongoDB")
		return err
	}
	return nil
}

// Ensure OrgCredentialRepositoryMongo implements domain.OrgCredentialRepository
var _ domain.OrgCredentialRepository = (*OrgCredentialRepositoryMongo)(nil)
