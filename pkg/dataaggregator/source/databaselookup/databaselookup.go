package databaselookup

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/travigo/journeyresolver/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var StopNotFoundError = errors.New("could not find a matching Stop")

// Source reads stop metadata from the Travigo stops collection
type Source struct {
	Collection *mongo.Collection
}

func New() *Source {
	return &Source{
		Collection: database.GetCollection("stops"),
	}
}

func (s *Source) GetName() string {
	return "Travigo Stop Database"
}

type stop struct {
	PrimaryIdentifier string            `bson:"primaryidentifier"`
	PrimaryName       string            `bson:"primaryname"`
	OtherIdentifiers  map[string]string `bson:"otheridentifiers"`
}

// StopProperties returns the known identifiers of a stop keyed the way the journey planner keys stop properties
func (s *Source) StopProperties(ctx context.Context, naptanID string) (map[string]string, error) {
	if naptanID == "" {
		return nil, StopNotFoundError
	}

	var result *stop
	err := s.Collection.FindOne(ctx, bson.M{
		"$or": bson.A{
			bson.M{"primaryidentifier": fmt.Sprintf("GB:ATCO:%s", naptanID)},
			bson.M{"otheridentifiers.AtcoCode": naptanID},
		},
	}, options.FindOne().SetProjection(bson.M{"primaryidentifier": 1, "primaryname": 1, "otheridentifiers": 1})).Decode(&result)

	if errors.Is(err, mongo.ErrNoDocuments) || (err == nil && result == nil) {
		return nil, fmt.Errorf("%w: %s", StopNotFoundError, naptanID)
	} else if err != nil {
		return nil, err
	}

	return stopProperties(result), nil
}

func stopProperties(stop *stop) map[string]string {
	properties := map[string]string{}

	for key, value := range stop.OtherIdentifiers {
		switch strings.ToLower(key) {
		case "crs":
			properties["crs"] = strings.ToUpper(value)
		case "tiploc":
			properties["tiploc"] = value
		case "atcocode":
			properties["atco"] = value
		}
	}

	if stop.PrimaryName != "" {
		properties["name"] = stop.PrimaryName
	}

	return properties
}
