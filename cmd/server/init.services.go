package main

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Dhairyash-1/videotube-api/config"
	authhdl "github.com/Dhairyash-1/videotube-api/internal/api/auth/handler"
	authsvc "github.com/Dhairyash-1/videotube-api/internal/api/auth/service"
	commenthdl "github.com/Dhairyash-1/videotube-api/internal/api/comment/handler"
	commentsvc "github.com/Dhairyash-1/videotube-api/internal/api/comment/service"
	playlisthdl "github.com/Dhairyash-1/videotube-api/internal/api/playlist/handler"
	playlistsvc "github.com/Dhairyash-1/videotube-api/internal/api/playlist/service"
	socialhdl "github.com/Dhairyash-1/videotube-api/internal/api/social/handler"
	socialsvc "github.com/Dhairyash-1/videotube-api/internal/api/social/service"
	tweethdl "github.com/Dhairyash-1/videotube-api/internal/api/tweet/handler"
	tweetsvc "github.com/Dhairyash-1/videotube-api/internal/api/tweet/service"
	videohdl "github.com/Dhairyash-1/videotube-api/internal/api/video/handler"
	videosvc "github.com/Dhairyash-1/videotube-api/internal/api/video/service"
	viewhdl "github.com/Dhairyash-1/videotube-api/internal/api/view/handler"
	viewsvc "github.com/Dhairyash-1/videotube-api/internal/api/view/service"
	"github.com/Dhairyash-1/videotube-api/internal/global"
	"github.com/Dhairyash-1/videotube-api/internal/logger"
	"github.com/Dhairyash-1/videotube-api/internal/mailer"
	"github.com/Dhairyash-1/videotube-api/internal/storage/kv"
	"github.com/Dhairyash-1/videotube-api/internal/storage/media"
)

// dependencies are the services and handlers built once at startup.
type dependencies struct {
	users   *authsvc.UserService
	mail    *mailer.Mailer
	limiter *kv.RedisStorage // nil keeps limiter counters in memory

	userHandler     *authhdl.UserHandler
	videoHandler    *videohdl.VideoHandler
	commentHandler  *commenthdl.CommentHandler
	tweetHandler    *tweethdl.TweetHandler
	playlistHandler *playlisthdl.PlaylistHandler
	socialHandler   *socialhdl.SocialHandler
	viewHandler     *viewhdl.ViewHandler
}

func initDependencies(cfg *config.Configuration, db *mongo.Database) (*dependencies, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := media.NewS3Store(ctx, media.Config{
		Bucket:          cfg.S3_Bucket,
		Region:          cfg.S3_Region,
		Endpoint:        cfg.S3_Endpoint,
		AccessKeyID:     cfg.S3_AccessKey,
		SecretAccessKey: cfg.S3_SecretKey,
		PublicBaseURL:   cfg.S3_PublicBaseURL,
		KeyPrefix:       cfg.S3_KeyPrefix,
		UploadRPS:       cfg.MediaUploadRPS,
	})
	if err != nil {
		return nil, err
	}

	deps := &dependencies{
		mail: mailer.New(mailer.Config{
			Host:     cfg.SMTP_Host,
			Port:     cfg.SMTP_Port,
			Username: cfg.SMTP_Username,
			Password: cfg.SMTP_Password,
			From:     cfg.MailFrom,
		}),
	}
	if deps.mail == nil {
		logger.GetAppLogger().Info("SMTP_HOST not set, mail notices disabled")
	}

	if cfg.RedisURL != "" {
		deps.limiter, err = kv.NewRedisStorage(ctx, cfg.RedisURL, "videotube:limiter:")
		if err != nil {
			return nil, err
		}
	}

	tokens := authsvc.NewTokenService(authsvc.TokenConfig{
		AccessSecret:  cfg.AccessTokenSecret,
		AccessExpiry:  cfg.AccessTokenExpiry,
		RefreshSecret: cfg.RefreshTokenSecret,
		RefreshExpiry: cfg.RefreshTokenExpiry,
	})
	deps.users = authsvc.NewUserService(db.Collection(global.MongoDB_ColNames.Users), tokens, store, deps.mail)
	deps.userHandler = authhdl.NewUserHandler(deps.users, authhdl.CookieConfig{
		Secure:        cfg.CookieSecure,
		AccessExpiry:  cfg.AccessTokenExpiry,
		RefreshExpiry: cfg.RefreshTokenExpiry,
	})

	videos := videosvc.NewVideoService(db, store)
	deps.videoHandler = videohdl.NewVideoHandler(videos)
	deps.commentHandler = commenthdl.NewCommentHandler(commentsvc.NewCommentService(db))
	deps.tweetHandler = tweethdl.NewTweetHandler(tweetsvc.NewTweetService(db))
	deps.playlistHandler = playlisthdl.NewPlaylistHandler(playlistsvc.NewPlaylistService(db))
	deps.socialHandler = socialhdl.NewSocialHandler(socialsvc.NewLikeService(db), socialsvc.NewSubscriptionService(db))
	deps.viewHandler = viewhdl.NewViewHandler(viewsvc.NewViewService(db), videos)
	return deps, nil
}

// close waits for queued mail and releases the limiter storage.
func (d *dependencies) close() {
	d.mail.Wait()
	if d.limiter != nil {
		if err := d.limiter.Close(); err != nil {
			logger.GetAppLogger().WithError(err).Warn("Failed to close limiter storage")
		}
	}
}
