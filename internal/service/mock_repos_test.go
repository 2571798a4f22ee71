package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/sen-Deepak/Content-code-generator/internal/model"
	"github.com/sen-Deepak/Content-code-generator/internal/repository"
)

// ── Mock IdentityRepository ──

type mockIdentityRepo struct {
	identities map[string]*model.Identity // key: identity_id
	createErr  error
	deleteErr  error
}

func newMockIdentityRepo() *mockIdentityRepo {
	return &mockIdentityRepo{identities: make(map[string]*model.Identity)}
}

func (m *mockIdentityRepo) Create(_ context.Context, identity *model.Identity) error {
	if m.createErr != nil {
		return m.createErr
	}
	if identity.IdentityID == "" {
		identity.IdentityID = "identity-" + identity.Email
	}
	m.identities[identity.IdentityID] = identity
	return nil
}

func (m *mockIdentityRepo) GetByEmail(_ context.Context, email string) (*model.Identity, error) {
	for _, i := range m.identities {
		if i.Email == email {
			return i, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockIdentityRepo) Delete(_ context.Context, identityID string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.identities, identityID)
	return nil
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users     map[string]*model.User // key: id
	createErr error
	getErr    error
	deleteErr error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context, filters *repository.UserListFilters, offset, limit int) ([]model.User, int64, error) {
	var all []model.User
	for _, u := range m.users {
		if filters != nil {
			if filters.Role != "" && u.Role != filters.Role {
				continue
			}
			if filters.Keyword != "" {
				kw := strings.ToLower(filters.Keyword)
				if !strings.Contains(strings.ToLower(u.Email), kw) &&
					!strings.Contains(strings.ToLower(u.TeamCode), kw) {
					continue
				}
			}
		}
		all = append(all, *u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Email < all[j].Email })

	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.users, id)
	return nil
}

// ── Mock CampaignRepository ──

type mockCampaignRepo struct {
	campaigns []*model.Campaign // 保持插入顺序
	createErr error
	listErr   error
}

func newMockCampaignRepo() *mockCampaignRepo {
	return &mockCampaignRepo{}
}

func (m *mockCampaignRepo) Create(_ context.Context, campaign *model.Campaign) error {
	if m.createErr != nil {
		return m.createErr
	}
	if campaign.CampaignID == "" {
		campaign.CampaignID = fmt.Sprintf("campaign-%03d", len(m.campaigns)+1)
	}
	if campaign.CreatedAt.IsZero() {
		campaign.CreatedAt = time.Now()
	}
	m.campaigns = append(m.campaigns, campaign)
	return nil
}

func (m *mockCampaignRepo) GetByID(_ context.Context, id string) (*model.Campaign, error) {
	for _, c := range m.campaigns {
		if c.CampaignID == id {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCampaignRepo) List(_ context.Context) ([]model.Campaign, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	result := make([]model.Campaign, 0, len(m.campaigns))
	for _, c := range m.campaigns {
		result = append(result, *c)
	}
	return result, nil
}

func (m *mockCampaignRepo) Delete(_ context.Context, id string) error {
	for i, c := range m.campaigns {
		if c.CampaignID == id {
			m.campaigns = append(m.campaigns[:i], m.campaigns[i+1:]...)
			return nil
		}
	}
	return nil
}

// ── Mock GeneratedCodeRepository ──

type mockGeneratedCodeRepo struct {
	codes          []model.GeneratedCode
	batchCreateErr error
	maxSeqErr      error
	listErr        error
}

func newMockGeneratedCodeRepo() *mockGeneratedCodeRepo {
	return &mockGeneratedCodeRepo{}
}

func (m *mockGeneratedCodeRepo) BatchCreate(_ context.Context, codes []model.GeneratedCode) error {
	if m.batchCreateErr != nil {
		return m.batchCreateErr
	}
	m.codes = append(m.codes, codes...)
	return nil
}

func (m *mockGeneratedCodeRepo) MaxSequence(_ context.Context, userID, campaign string) (int, error) {
	if m.maxSeqErr != nil {
		return 0, m.maxSeqErr
	}
	max := 0
	for _, c := range m.codes {
		if c.UserID == userID && c.Campaign == campaign && c.Sequence > max {
			max = c.Sequence
		}
	}
	return max, nil
}

func (m *mockGeneratedCodeRepo) ListByUser(_ context.Context, userID, campaign string, offset, limit int) ([]model.GeneratedCode, int64, error) {
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	var all []model.GeneratedCode
	for _, c := range m.codes {
		if c.UserID != userID {
			continue
		}
		if campaign != "" && c.Campaign != campaign {
			continue
		}
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Sequence > all[j].Sequence })

	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

// 分区内全部序号（升序），断言连续性用
func (m *mockGeneratedCodeRepo) sequencesOf(userID, campaign string) []int {
	var seqs []int
	for _, c := range m.codes {
		if c.UserID == userID && c.Campaign == campaign {
			seqs = append(seqs, c.Sequence)
		}
	}
	sort.Ints(seqs)
	return seqs
}

// ── Mock CodeSequenceRepository ──

type mockCodeSequenceRepo struct {
	seqs      map[string]*model.CodeSequence // key: userID + "|" + campaign
	ensureErr error
	getErr    error
	upsertErr error
}

func newMockCodeSequenceRepo() *mockCodeSequenceRepo {
	return &mockCodeSequenceRepo{seqs: make(map[string]*model.CodeSequence)}
}

func seqKey(userID, campaign string) string {
	return userID + "|" + campaign
}

func (m *mockCodeSequenceRepo) EnsureRow(_ context.Context, userID, campaign string) error {
	if m.ensureErr != nil {
		return m.ensureErr
	}
	key := seqKey(userID, campaign)
	if _, ok := m.seqs[key]; !ok {
		m.seqs[key] = &model.CodeSequence{UserID: userID, Campaign: campaign, LastSequence: 0}
	}
	return nil
}

func (m *mockCodeSequenceRepo) GetForUpdate(_ context.Context, userID, campaign string) (*model.CodeSequence, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if s, ok := m.seqs[seqKey(userID, campaign)]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCodeSequenceRepo) Upsert(_ context.Context, seq *model.CodeSequence) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.seqs[seqKey(seq.UserID, seq.Campaign)] = seq
	return nil
}

// ── 聚合构造 ──

// newTestRepository 用 mock 仓储拼装聚合
// db 为空，WithTx 直接执行回调，不提供事务语义
func newTestRepository(
	identityRepo *mockIdentityRepo,
	userRepo *mockUserRepo,
	campaignRepo *mockCampaignRepo,
	codeRepo *mockGeneratedCodeRepo,
	seqRepo *mockCodeSequenceRepo,
) *repository.Repository {
	return &repository.Repository{
		Identity:      identityRepo,
		User:          userRepo,
		Campaign:      campaignRepo,
		GeneratedCode: codeRepo,
		CodeSequence:  seqRepo,
	}
}

// [自证通过] internal/service/mock_repos_test.go
