package group

import (
	"huoban_contact_server/internal/dao/mysql/repository"
	"huoban_contact_server/pkg/errorx"

	"go.uber.org/zap"
)

// CascadeRemove 关系某一侧脱离好友状态时，把该关系从这一侧的所有分组中移除
// 状态机在拉黑/删除转移时调用
// 归档行即使在分组排序中找不到对应 id 也照删（容忍排序与归档的漂移）
// 返回是否确实移除了归档，调用方据此决定是否 bump groups_mod_date
func CascadeRemove(repos *repository.Repositories, relationshipUuid, side string, now int64) (bool, error) {
	filings, err := repos.Filing.FindByRelationshipSide(relationshipUuid, side)
	if err != nil {
		zap.L().Error(err.Error())
		return false, errorx.ErrServerBusy
	}
	if len(filings) == 0 {
		return false, nil
	}

	for _, filing := range filings {
		grp, err := repos.Group.FindByUuid(filing.GroupUuid)
		if err != nil {
			if errorx.IsNotFound(err) {
				continue // 分组已删，归档行在下面统一清掉
			}
			zap.L().Error(err.Error())
			return false, errorx.ErrServerBusy
		}
		newOrder := grp.RelOrder.Remove(relationshipUuid)
		if len(newOrder) != len(grp.RelOrder) {
			grp.RelOrder = newOrder
			grp.ModDate = now
			if err := repos.Group.Update(grp); err != nil {
				zap.L().Error(err.Error())
				return false, errorx.ErrServerBusy
			}
		}
	}

	if err := repos.Filing.DeleteByRelationshipSide(relationshipUuid, side); err != nil {
		zap.L().Error(err.Error())
		return false, errorx.ErrServerBusy
	}
	return true, nil
}
