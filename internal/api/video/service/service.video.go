// Package videosvc implements publishing and managing videos.
package videosvc

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	basesvc "github.com/Dhairyash-1/videotube-api/internal/api/base/service"
	videodto "github.com/Dhairyash-1/videotube-api/internal/api/video/dto"
	"github.com/Dhairyash-1/videotube-api/internal/api/video/models"
	"github.com/Dhairyash-1/videotube-api/internal/common"
	"github.com/Dhairyash-1/videotube-api/internal/global"
	"github.com/Dhairyash-1/videotube-api/internal/logger"
	"github.com/Dhairyash-1/videotube-api/internal/storage/media"
)

// MediaStore uploads and removes video files and thumbnails.
type MediaStore interface {
	Store(ctx context.Context, file *media.LocalFile) (media.Ref, error)
	Remove(ctx context.Context, ref media.Ref) media.RemoveResult
}

// ErrVideoNotFound is returned for missing videos and for unpublished videos of other users.
var ErrVideoNotFound = common.NotFound("Video not found")

// VideoService owns the videos collection and the cleanup of everything that points at a video.
type VideoService struct {
	*basesvc.BaseServiceMongoImpl[models.Video]
	users     *mongo.Collection
	comments  *mongo.Collection
	likes     *mongo.Collection
	playlists *mongo.Collection
	media     MediaStore
}

// NewVideoService uses the collections of db named in global.MongoDB_ColNames.
func NewVideoService(db *mongo.Database, store MediaStore) *VideoService {
	names := global.MongoDB_ColNames
	return &VideoService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Video](db.Collection(names.Videos)),
		users:                db.Collection(names.Users),
		comments:             db.Collection(names.Comments),
		likes:                db.Collection(names.Likes),
		playlists:            db.Collection(names.Playlists),
		media:                store,
	}
}

func (s *VideoService) findVideo(ctx context.Context, id primitive.ObjectID) (models.Video, error) {
	video, err := s.FindOneById(ctx, id)
	if errors.Is(err, common.ErrNotFound) {
		return video, ErrVideoNotFound
	}
	return video, err
}

// FindOwned loads a video and checks that actor owns it.
func (s *VideoService) FindOwned(ctx context.Context, actor, id primitive.ObjectID, action string) (models.Video, error) {
	video, err := s.findVideo(ctx, id)
	if err != nil {
		return video, err
	}
	return video, basesvc.CheckOwner(video.Owner, actor, action)
}

// FindVisible loads a video that viewer may see: published, or owned by viewer.
func (s *VideoService) FindVisible(ctx context.Context, id, viewer primitive.ObjectID) (models.Video, error) {
	video, err := s.findVideo(ctx, id)
	if err != nil {
		return video, err
	}
	if !video.IsPublished && (viewer.IsZero() || video.Owner != viewer) {
		return models.Video{}, ErrVideoNotFound
	}
	return video, nil
}

// Publish uploads the video and its thumbnail and stores the video as published.
func (s *VideoService) Publish(ctx context.Context, owner primitive.ObjectID, input *videodto.PublishVideoInput, videoFile, thumbnail *media.LocalFile) (models.Video, error) {
	defer media.Cleanup(videoFile, thumbnail)

	if videoFile == nil {
		return models.Video{}, common.BadRequest("Video file is required")
	}
	if thumbnail == nil {
		return models.Video{}, common.BadRequest("Thumbnail is required")
	}
	if videoFile.Duration <= 0 {
		return models.Video{}, common.BadRequest("Could not read the duration of the video file")
	}

	duration := videoFile.Duration
	videoRef, err := s.media.Store(ctx, videoFile)
	if err != nil {
		return models.Video{}, err
	}
	thumbRef, err := s.media.Store(ctx, thumbnail)
	if err != nil {
		s.media.Remove(ctx, videoRef).Log("video")
		return models.Video{}, err
	}

	video, err := s.InsertOne(ctx, models.Video{
		VideoFile:   videoRef,
		Thumbnail:   thumbRef,
		Owner:       owner,
		Title:       input.Title,
		Description: input.Description,
		Duration:    duration,
		IsPublished: true,
	})
	if err != nil {
		s.media.Remove(ctx, videoRef).Log("video")
		s.media.Remove(ctx, thumbRef).Log("video")
		return models.Video{}, err
	}
	return video, nil
}

// Update changes title, description and optionally the thumbnail of an owned video.
func (s *VideoService) Update(ctx context.Context, actor, id primitive.ObjectID, input *videodto.UpdateVideoInput, thumbnail *media.LocalFile) (models.Video, error) {
	defer media.Cleanup(thumbnail)

	set := map[string]interface{}{}
	if input.Title != "" {
		set["title"] = input.Title
	}
	if input.Description != "" {
		set["description"] = input.Description
	}
	if len(set) == 0 && thumbnail == nil {
		return models.Video{}, common.BadRequest("Provide a title, description or thumbnail to update")
	}

	current, err := s.FindOwned(ctx, actor, id, "update this video")
	if err != nil {
		return models.Video{}, err
	}

	var newThumb media.Ref
	if thumbnail != nil {
		if newThumb, err = s.media.Store(ctx, thumbnail); err != nil {
			return models.Video{}, err
		}
		set["thumbnail"] = newThumb
	}

	updated, err := s.UpdateOne(ctx, bson.M{"_id": id, "owner": actor}, &basesvc.UpdateData{Set: set})
	if err != nil {
		if thumbnail != nil {
			s.media.Remove(ctx, newThumb).Log("video")
		}
		if errors.Is(err, common.ErrNotFound) {
			return models.Video{}, ErrVideoNotFound
		}
		return models.Video{}, err
	}
	if thumbnail != nil {
		s.media.Remove(ctx, current.Thumbnail).Log("video")
	}
	return updated, nil
}

// TogglePublish flips isPublished of an owned video.
func (s *VideoService) TogglePublish(ctx context.Context, actor, id primitive.ObjectID) (models.Video, error) {
	current, err := s.FindOwned(ctx, actor, id, "change the publish status of this video")
	if err != nil {
		return models.Video{}, err
	}
	updated, err := s.UpdateOne(ctx, bson.M{"_id": id, "owner": actor}, &basesvc.UpdateData{
		Set: map[string]interface{}{"isPublished": !current.IsPublished},
	})
	if errors.Is(err, common.ErrNotFound) {
		return models.Video{}, ErrVideoNotFound
	}
	return updated, err
}

// Delete removes an owned video, then best-effort its comments, the likes on the video
// and on those comments, its playlist memberships and its media.
func (s *VideoService) Delete(ctx context.Context, actor, id primitive.ObjectID) error {
	video, err := s.FindOwned(ctx, actor, id, "delete this video")
	if err != nil {
		return err
	}

	deleted, err := s.DeleteOne(ctx, bson.M{"_id": id, "owner": actor})
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrVideoNotFound
	}

	s.cascadeDelete(ctx, video)
	return nil
}

func (s *VideoService) cascadeDelete(ctx context.Context, video models.Video) {
	log := logger.WithContext(ctx).WithField("module", "video").WithField("video_id", video.ID.Hex())

	commentIDs, err := s.commentIDs(ctx, video.ID)
	if err != nil {
		log.WithError(err).Warn("Failed to list comments of deleted video")
	}
	if len(commentIDs) > 0 {
		if _, err := s.likes.DeleteMany(ctx, bson.M{"comment": bson.M{"$in": commentIDs}}); err != nil {
			log.WithError(err).Warn("Failed to delete comment likes of deleted video")
		}
	}
	if _, err := s.likes.DeleteMany(ctx, bson.M{"video": video.ID}); err != nil {
		log.WithError(err).Warn("Failed to delete likes of deleted video")
	}
	if _, err := s.comments.DeleteMany(ctx, bson.M{"video": video.ID}); err != nil {
		log.WithError(err).Warn("Failed to delete comments of deleted video")
	}
	if _, err := s.playlists.UpdateMany(ctx, bson.M{"videos": video.ID}, bson.M{"$pull": bson.M{"videos": video.ID}}); err != nil {
		log.WithError(err).Warn("Failed to remove deleted video from playlists")
	}

	s.media.Remove(ctx, video.VideoFile).Log("video")
	s.media.Remove(ctx, video.Thumbnail).Log("video")
}

func (s *VideoService) commentIDs(ctx context.Context, videoID primitive.ObjectID) ([]primitive.ObjectID, error) {
	cursor, err := s.comments.Find(ctx, bson.M{"video": videoID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	return ids, nil
}

// RecordView counts a view of a video visible to viewer and puts it at the front of the
// viewer's watch history. Repeated views are kept in the history.
func (s *VideoService) RecordView(ctx context.Context, id, viewer primitive.ObjectID) error {
	filter := bson.M{"_id": id, "isPublished": true}
	if !viewer.IsZero() {
		filter = bson.M{"_id": id, "$or": []bson.M{{"isPublished": true}, {"owner": viewer}}}
	}

	if _, err := s.UpdateOne(ctx, filter, &basesvc.UpdateData{
		Inc: map[string]interface{}{"views": 1},
	}); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return ErrVideoNotFound
		}
		return err
	}

	if viewer.IsZero() {
		return nil
	}
	_, err := s.users.UpdateOne(ctx, bson.M{"_id": viewer}, bson.M{
		"$push": bson.M{"watchHistory": bson.M{"$each": []primitive.ObjectID{id}, "$position": 0}},
	})
	if err != nil {
		logger.WithContext(ctx).WithError(err).WithField("video_id", id.Hex()).Error("Failed to update watch history")
		return common.ConvertMongoError(err)
	}
	return nil
}
