package main

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	authmodels "github.com/Dhairyash-1/videotube-api/internal/api/auth/models"
	commentmodels "github.com/Dhairyash-1/videotube-api/internal/api/comment/models"
	playlistmodels "github.com/Dhairyash-1/videotube-api/internal/api/playlist/models"
	socialmodels "github.com/Dhairyash-1/videotube-api/internal/api/social/models"
	tweetmodels "github.com/Dhairyash-1/videotube-api/internal/api/tweet/models"
	videomodels "github.com/Dhairyash-1/videotube-api/internal/api/video/models"
	"github.com/Dhairyash-1/videotube-api/internal/database"
	"github.com/Dhairyash-1/videotube-api/internal/global"
	"github.com/Dhairyash-1/videotube-api/internal/logger"
	"github.com/Dhairyash-1/videotube-api/internal/registry"
)

// collectionModels pairs every collection with the model whose `index` tags describe it.
func collectionModels() map[string]interface{} {
	names := global.MongoDB_ColNames
	return map[string]interface{}{
		names.Users:         authmodels.User{},
		names.Videos:        videomodels.Video{},
		names.Comments:      commentmodels.Comment{},
		names.Tweets:        tweetmodels.Tweet{},
		names.Playlists:     playlistmodels.Playlist{},
		names.Subscriptions: socialmodels.Subscription{},
		names.Likes:         socialmodels.Like{},
	}
}

// InitCollections registers the collections of db and brings their indexes up to date.
func InitCollections(db *mongo.Database) (*registry.Registry[*mongo.Collection], error) {
	log := logger.GetAppLogger()
	collections := registry.NewRegistry[*mongo.Collection]()
	models := collectionModels()

	for name := range models {
		registered, err := collections.Register(name, db.Collection(name))
		if err != nil {
			return nil, err
		}
		if !registered {
			log.Warnf("Collection %s already registered", name)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, name := range collections.Names() {
		if err := database.CreateIndexes(ctx, collections.MustGet(name), models[name]); err != nil {
			return nil, fmt.Errorf("indexes of %s: %w", name, err)
		}
	}
	if err := database.CreateLikeIndexes(ctx, collections.MustGet(global.MongoDB_ColNames.Likes)); err != nil {
		return nil, fmt.Errorf("like indexes: %w", err)
	}

	log.WithField("collections", collections.Names()).Info("Initialized collection registry")
	return collections, nil
}
