package database

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/journeyresolver/pkg/util"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoInstance struct {
	Client   *mongo.Client
	Database *mongo.Database
}

var MongoGlobalInstance *MongoInstance

const defaultMongoDatabase = "travigo"

// Connect sets up the global mongo instance holding the stop metadata. It is skipped when no connection string
// is configured and the database is not required.
func Connect(required bool) error {
	dbName := defaultMongoDatabase

	env := util.GetEnvironmentVariables()

	connectionString := env["TRAVIGO_MONGODB_CONNECTION"]
	if connectionString == "" && !required {
		log.Info().Msg("Skipping MongoDB setup")
		return nil
	} else if connectionString == "" {
		connectionString = "mongodb://localhost:27017/"
	}

	if env["TRAVIGO_MONGODB_DATABASE"] != "" {
		dbName = env["TRAVIGO_MONGODB_DATABASE"]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(connectionString))
	if err != nil {
		return err
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		return err
	}

	MongoGlobalInstance = &MongoInstance{
		Client:   client,
		Database: client.Database(dbName),
	}

	log.Info().Str("database", dbName).Msg("MongoDB client setup")

	return nil
}

func Connected() bool {
	return MongoGlobalInstance != nil
}

func GetCollection(collectionName string) *mongo.Collection {
	return MongoGlobalInstance.Database.Collection(collectionName)
}
