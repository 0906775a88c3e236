package social

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"socialnet/graph"
	"socialnet/model"
)

// adjacency builds the friendship adjacency from one full scan of users
// and edges. The id slice and every neighbor list are sorted so the graph
// algorithms see deterministic input.
func (s *Service) adjacency() ([]uuid.UUID, graph.Adjacency, error) {
	users, err := s.users.GetAll()
	if err != nil {
		return nil, nil, storageError("could not list users", err)
	}
	edges, err := s.friends.GetAll()
	if err != nil {
		return nil, nil, storageError("could not list friendships", err)
	}

	ids := make([]uuid.UUID, 0, len(users))
	adj := make(graph.Adjacency, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
		adj[u.ID] = nil
	}
	for _, e := range edges {
		adj[e.UserID1] = append(adj[e.UserID1], e.UserID2)
		adj[e.UserID2] = append(adj[e.UserID2], e.UserID1)
	}

	sortIDs(ids)
	for _, neighbors := range adj {
		sortIDs(neighbors)
	}
	return ids, adj, nil
}

// Communities returns the number of connected components and the members
// of the component(s) with the longest chain of friendships.
func (s *Service) Communities() (int, [][]uuid.UUID, error) {
	ids, adj, err := s.adjacency()
	if err != nil {
		return 0, nil, err
	}
	count, best := graph.MostActive(ids, adj, s.graphOpt)
	return count, best, nil
}

// UsersWithMinFriends returns the users with at least n friends, sorted by
// friend count, first name and last name, all descending.
func (s *Service) UsersWithMinFriends(n int) ([]model.User, error) {
	users, err := s.users.GetAll()
	if err != nil {
		return nil, storageError("could not list users", err)
	}
	_, adj, err := s.adjacency()
	if err != nil {
		return nil, err
	}

	out := make([]model.User, 0)
	for _, u := range users {
		if len(adj[u.ID]) >= n {
			out = append(out, u)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if ca, cb := len(adj[a.ID]), len(adj[b.ID]); ca != cb {
			return ca > cb
		}
		if a.FirstName != b.FirstName {
			return a.FirstName > b.FirstName
		}
		return a.LastName > b.LastName
	})
	return out, nil
}

// FriendsFromMonth returns the friends a user made in the given month of
// any year.
func (s *Service) FriendsFromMonth(userID uuid.UUID, month time.Month) ([]model.User, error) {
	if _, err := s.GetUser(userID); err != nil {
		return nil, err
	}
	edges, err := s.friends.GetAll()
	if err != nil {
		return nil, storageError("could not list friendships", err)
	}

	friends := make([]model.User, 0)
	for _, edge := range edges {
		if edge.CreatedAt.Month() != month {
			continue
		}
		other, ok := edge.Other(userID)
		if !ok {
			continue
		}
		friend, err := s.users.GetOne(other)
		if err != nil {
			return nil, storageError("could not resolve friend", err)
		}
		if friend != nil {
			friends = append(friends, *friend)
		}
	}
	return friends, nil
}

func sortIDs(ids []uuid.UUID) {
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
}
