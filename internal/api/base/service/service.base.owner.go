package basesvc

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Dhairyash-1/videotube-api/internal/common"
)

// CheckOwner returns Forbidden naming action unless actor owns the resource.
func CheckOwner(owner, actor primitive.ObjectID, action string) error {
	if owner.IsZero() || owner != actor {
		return common.Forbidden(action)
	}
	return nil
}
