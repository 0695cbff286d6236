package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// linkedIDFilter limits linked-account uniqueness to users that linked one.
func linkedIDFilter(field string) bson.M {
	return bson.M{field: bson.M{"$gt": ""}}
}

var indexes = map[string][]mongo.IndexModel{
	colUsers: {
		{Keys: bson.D{{Key: "usernameKey", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email.key", Value: 1}}, Options: options.Index().SetUnique(true)},
		{
			Keys:    bson.D{{Key: "roblox.id", Value: 1}},
			Options: options.Index().SetUnique(true).SetPartialFilterExpression(linkedIDFilter("roblox.id")),
		},
		{
			Keys:    bson.D{{Key: "discord.id", Value: 1}},
			Options: options.Index().SetUnique(true).SetPartialFilterExpression(linkedIDFilter("discord.id")),
		},
	},
	colOrganizations: {
		{Keys: bson.D{{Key: "nameKey", Value: 1}}, Options: options.Index().SetUnique(true)},
	},
	colLocations: {
		{Keys: bson.D{{Key: "organizationId", Value: 1}, {Key: "nameKey", Value: 1}}},
	},
	colAccessPoints: {
		{Keys: bson.D{{Key: "organizationId", Value: 1}}},
		{Keys: bson.D{{Key: "locationId", Value: 1}, {Key: "nameKey", Value: 1}}},
	},
	colInvitations: {
		{Keys: bson.D{{Key: "codeHash", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "organizationId", Value: 1}}},
		{Keys: bson.D{{Key: "expiresAt", Value: 1}}},
	},
	colNotifications: {
		{Keys: bson.D{{Key: "recipient", Value: 1}, {Key: "_id", Value: -1}}},
		{Keys: bson.D{{Key: "organizationId", Value: 1}, {Key: "memberKey", Value: 1}}},
	},
	colVerificationCodes: {
		{Keys: bson.D{{Key: "codeHash", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "type", Value: 1}}},
	},
}

// ApplyMigrations creates the collections' indexes. Index creation is
// idempotent, so it runs on every start.
func (s *Store) ApplyMigrations() error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	for name, models := range indexes {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("mongo: create %s indexes: %w", name, err)
		}
	}
	return nil
}
