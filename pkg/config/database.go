package config

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DB holds the document store connection
type DB struct {
	Mongo *mongo.Client
}

// InitDB connects to MongoDB and verifies the connection
func InitDB(uri string) (*DB, error) {
	clientOptions := options.Client().ApplyURI(uri)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	// Ping the primary to verify connection
	if err = client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	log.Println("Successfully connected to MongoDB!")
	return &DB{Mongo: client}, nil
}

// CloseDB closes the document store connection
func (db *DB) CloseDB() {
	if db.Mongo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.Mongo.Disconnect(ctx); err != nil {
		log.Printf("Error closing MongoDB connection: %v\n", err)
	} else {
		log.Println("MongoDB connection closed.")
	}
}
