// Package playlistsvc implements owned playlists.
package playlistsvc

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	basesvc "github.com/Dhairyash-1/videotube-api/internal/api/base/service"
	playlistdto "github.com/Dhairyash-1/videotube-api/internal/api/playlist/dto"
	"github.com/Dhairyash-1/videotube-api/internal/api/playlist/models"
	"github.com/Dhairyash-1/videotube-api/internal/common"
	"github.com/Dhairyash-1/videotube-api/internal/global"
)

var (
	ErrPlaylistNotFound = common.NotFound("Playlist not found")
	ErrVideoNotFound    = common.NotFound("Video not found")
)

// PlaylistService owns the playlists collection.
type PlaylistService struct {
	*basesvc.BaseServiceMongoImpl[models.Playlist]
	videos *mongo.Collection
}

// NewPlaylistService uses the playlists and videos collections of db.
func NewPlaylistService(db *mongo.Database) *PlaylistService {
	names := global.MongoDB_ColNames
	return &PlaylistService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Playlist](db.Collection(names.Playlists)),
		videos:               db.Collection(names.Videos),
	}
}

// Create stores an empty playlist.
func (s *PlaylistService) Create(ctx context.Context, owner primitive.ObjectID, input *playlistdto.CreatePlaylistInput) (models.Playlist, error) {
	return s.InsertOne(ctx, models.Playlist{
		Name:        input.Name,
		Description: input.Description,
		Owner:       owner,
	})
}

func (s *PlaylistService) checkOwner(ctx context.Context, actor, id primitive.ObjectID, action string) error {
	playlist, err := s.FindOneById(ctx, id)
	if errors.Is(err, common.ErrNotFound) {
		return ErrPlaylistNotFound
	}
	if err != nil {
		return err
	}
	return basesvc.CheckOwner(playlist.Owner, actor, action)
}

// Update changes name and description of an owned playlist.
func (s *PlaylistService) Update(ctx context.Context, actor, id primitive.ObjectID, input *playlistdto.UpdatePlaylistInput) (models.Playlist, error) {
	set := map[string]interface{}{}
	if input.Name != "" {
		set["name"] = input.Name
	}
	if input.Description != "" {
		set["description"] = input.Description
	}
	if len(set) == 0 {
		return models.Playlist{}, common.BadRequest("Provide a name or description to update")
	}

	if err := s.checkOwner(ctx, actor, id, "update this playlist"); err != nil {
		return models.Playlist{}, err
	}
	return s.ownedWrite(ctx, actor, id, &basesvc.UpdateData{Set: set}, "update this playlist")
}

// Delete removes an owned playlist. Its videos are untouched.
func (s *PlaylistService) Delete(ctx context.Context, actor, id primitive.ObjectID) error {
	if err := s.checkOwner(ctx, actor, id, "delete this playlist"); err != nil {
		return err
	}
	deleted, err := s.DeleteOne(ctx, bson.M{"_id": id, "owner": actor})
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrPlaylistNotFound
	}
	return nil
}

// AddVideo adds a video the actor can see to an owned playlist. Adding twice is a no-op.
func (s *PlaylistService) AddVideo(ctx context.Context, actor, playlistID, videoID primitive.ObjectID) (models.Playlist, error) {
	visible := bson.M{"_id": videoID, "$or": []bson.M{{"isPublished": true}, {"owner": actor}}}
	count, err := s.videos.CountDocuments(ctx, visible)
	if err != nil {
		return models.Playlist{}, common.ConvertMongoError(err)
	}
	if count == 0 {
		return models.Playlist{}, ErrVideoNotFound
	}

	return s.ownedWrite(ctx, actor, playlistID, &basesvc.UpdateData{
		AddToSet: map[string]interface{}{"videos": videoID},
	}, "add videos to this playlist")
}

// RemoveVideo pulls a video from an owned playlist. Removing an absent video is a no-op.
func (s *PlaylistService) RemoveVideo(ctx context.Context, actor, playlistID, videoID primitive.ObjectID) (models.Playlist, error) {
	return s.ownedWrite(ctx, actor, playlistID, &basesvc.UpdateData{
		Pull: map[string]interface{}{"videos": videoID},
	}, "remove videos from this playlist")
}

// ownedWrite applies update only when actor owns the playlist. When nothing matched it tells
// a missing playlist apart from someone else's.
func (s *PlaylistService) ownedWrite(ctx context.Context, actor, id primitive.ObjectID, update *basesvc.UpdateData, action string) (models.Playlist, error) {
	playlist, err := s.UpdateOne(ctx, bson.M{"_id": id, "owner": actor}, update)
	if !errors.Is(err, common.ErrNotFound) {
		return playlist, err
	}
	if err := s.checkOwner(ctx, actor, id, action); err != nil {
		return models.Playlist{}, err
	}
	return models.Playlist{}, ErrPlaylistNotFound
}
