package service

import (
	"context"

	"github.com/myrepublic-hub/network-hub-backend/internal/models"
	"github.com/myrepublic-hub/network-hub-backend/internal/repository"
)

// ============================================
// Network Service
// ============================================

type NetworkService interface {
	// FamilyTree builds the referral tree rooted at the given member
	// from the flat sponsor edges.
	FamilyTree(ctx context.Context, rootID string) (*models.FamilyTreeNode, error)
	// UplineChain returns the sponsor ancestors of a member ordered from
	// level 1 (direct sponsor) upward.
	UplineChain(ctx context.Context, memberID string) ([]*repository.Member, error)
	NetworkStats(ctx context.Context, memberID string) (*models.NetworkStatsResponse, error)
	DownlineCounts(ctx context.Context) (map[string]int, error)
}

type networkService struct {
	memberRepo repository.MemberRepository
}

func NewNetworkService(memberRepo repository.MemberRepository) NetworkService {
	return &networkService{memberRepo: memberRepo}
}

func (s *networkService) FamilyTree(ctx context.Context, rootID string) (*models.FamilyTreeNode, error) {
	root, err := s.memberRepo.FindByID(ctx, rootID)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, ErrMemberNotFound
	}

	members, err := s.memberRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	childrenOf := make(map[string][]*repository.Member)
	for _, m := range members {
		if m.SponsorID != nil {
			childrenOf[*m.SponsorID] = append(childrenOf[*m.SponsorID], m)
		}
	}

	rootNode := &models.FamilyTreeNode{
		ID:       root.ID,
		Name:     root.Name,
		JoinDate: root.JoinDate,
		Level:    0,
		Children: []*models.FamilyTreeNode{},
	}

	// Iterative expansion with a visited set. A corrupt sponsor cycle
	// must not hang the request.
	visited := map[string]bool{root.ID: true}
	stack := []*models.FamilyTreeNode{rootNode}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, child := range childrenOf[node.ID] {
			if visited[child.ID] {
				continue
			}
			visited[child.ID] = true
			childNode := &models.FamilyTreeNode{
				ID:       child.ID,
				Name:     child.Name,
				JoinDate: child.JoinDate,
				Level:    node.Level + 1,
				Children: []*models.FamilyTreeNode{},
			}
			node.Children = append(node.Children, childNode)
			stack = append(stack, childNode)
		}
	}

	return rootNode, nil
}

func (s *networkService) UplineChain(ctx context.Context, memberID string) ([]*repository.Member, error) {
	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}

	var chain []*repository.Member
	visited := map[string]bool{member.ID: true}

	current := member
	for current.SponsorID != nil {
		sponsor, err := s.memberRepo.FindByID(ctx, *current.SponsorID)
		if err != nil {
			return nil, err
		}
		if sponsor == nil || visited[sponsor.ID] {
			break
		}
		visited[sponsor.ID] = true
		chain = append(chain, sponsor)
		current = sponsor
	}
	return chain, nil
}

func (s *networkService) NetworkStats(ctx context.Context, memberID string) (*models.NetworkStatsResponse, error) {
	tree, err := s.FamilyTree(ctx, memberID)
	if err != nil {
		return nil, err
	}

	total := 0
	depth := 0
	stack := []*models.FamilyTreeNode{tree}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node.Level > depth {
			depth = node.Level
		}
		if node.ID != memberID {
			total++
		}
		stack = append(stack, node.Children...)
	}

	return &models.NetworkStatsResponse{
		MemberID:        memberID,
		DirectDownlines: len(tree.Children),
		TotalDownlines:  total,
		NetworkDepth:    depth,
	}, nil
}

func (s *networkService) DownlineCounts(ctx context.Context) (map[string]int, error) {
	members, err := s.memberRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(members))
	for _, m := range members {
		counts[m.ID] = 0
	}
	for _, m := range members {
		if m.SponsorID != nil {
			if _, ok := counts[*m.SponsorID]; ok {
				counts[*m.SponsorID]++
			}
		}
	}
	return counts, nil
}
