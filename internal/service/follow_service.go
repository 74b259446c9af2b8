package service

import (
	"Gloom/internal/api/dto"
	"Gloom/internal/model"
	"Gloom/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"sync"
)

type FollowService interface {
	Toggle(ctx context.Context, sourceID, targetID string) (*dto.FollowToggleDTO, error)
}

type followServiceImpl struct {
	userRepo repository.UserRecordRepo

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewFollowService(userRepo repository.UserRecordRepo) FollowService {
	return &followServiceImpl{
		userRepo: userRepo,
		locks:    make(map[string]*sync.Mutex),
	}
}

// pairLock 返回这对用户专属的互斥锁，键对 id 排序后生成，
// 与方向无关（A→B 与 B→A 触碰同样的两条记录）
func (s *followServiceImpl) pairLock(a, b string) *sync.Mutex {
	if b < a {
		a, b = b, a
	}
	key := a + ":" + b

	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}

// Toggle 切换 source→target 的关注关系，并同步维护两端的冗余列表。
// 底层存储不提供跨记录事务，这里的写入顺序固定为先 target 后 source：
// 第一条失败时两端都未变更，重试安全；第二条失败时两端已不对称，
// 以 PartialWriteError 区分上报，不做自动回滚。
// 同一对用户的并发切换经 pairLock 串行化，用于挡掉按钮连击造成的
// 丢失更新；两条列表的对称性与去重在此之外不做校验。
func (s *followServiceImpl) Toggle(ctx context.Context, sourceID, targetID string) (*dto.FollowToggleDTO, error) {
	if sourceID == targetID {
		return nil, ErrFollowSelf
	}

	lock := s.pairLock(sourceID, targetID)
	lock.Lock()
	defer lock.Unlock()

	// 每次都重新读取，底层契约没有按主键取单条的能力，在内存中查找
	users, err := s.userRepo.SelectAll(ctx)
	if err != nil {
		return nil, err
	}

	var source, target *model.User
	for _, u := range users {
		switch u.ID {
		case sourceID:
			source = u
		case targetID:
			target = u
		}
	}
	if source == nil || target == nil {
		return nil, ErrUserNotFound
	}

	isFollowing := target.FollowerIDs.Contains(sourceID)

	if isFollowing {
		target.FollowerIDs = target.FollowerIDs.Remove(sourceID)
		source.FollowingIDs = source.FollowingIDs.Remove(targetID)
	} else {
		target.FollowerIDs = target.FollowerIDs.Append(sourceID)
		source.FollowingIDs = source.FollowingIDs.Append(targetID)
	}

	if err = s.userRepo.Upsert(ctx, target); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFollowWrite, err)
	}

	if err = s.userRepo.Upsert(ctx, source); err != nil {
		log.ErrorContext(ctx, "follow toggle second write failed, graph asymmetric",
			"source", sourceID, "target", targetID, "err", err)
		return nil, &PartialWriteError{
			SourceID: sourceID,
			TargetID: targetID,
			Err:      err,
		}
	}

	return &dto.FollowToggleDTO{
		IsFollowing: !isFollowing,
		Source:      dto.ToUserDTO(source),
		Target:      dto.ToUserDTO(target),
	}, nil
}
