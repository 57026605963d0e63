package sync

import (
	"context"
	"encoding/json"
	"strconv"

	"synchub/core/nango"
	"synchub/feature/contacts"
	"synchub/feature/contacts/models"

	"go.uber.org/zap"
)

// Sink receives the contacts a sync run produced. Members removed from the
// workspace arrive separately as deletions.
type Sink interface {
	SaveContacts(ctx context.Context, contacts []models.Contact) error
	DeleteContacts(ctx context.Context, ids []string) error
}

// Scope identifies the connection a sync run operates on.
type Scope struct {
	ConnectionID      string
	ProviderConfigKey string
}

// Syncer lists every member of a Slack workspace through the platform proxy
// and hands the mapped contacts to the sink. Bots are skipped; deleted
// members flow through as deletions so the local rows get marked.
type Syncer struct {
	proxy     nango.Proxier
	sink      Sink
	logger    *zap.Logger
	pageLimit int
	retries   int
}

// NewSyncer creates a Slack member syncer with the defaults used by the
// hosted sync (page size 200, retry budget 10).
func NewSyncer(proxy nango.Proxier, sink Sink, logger *zap.Logger) *Syncer {
	return &Syncer{
		proxy:     proxy,
		sink:      sink,
		logger:    logger,
		pageLimit: 200,
		retries:   10,
	}
}

// Run walks users.list with its opaque cursor until exhaustion, then saves
// the accumulated contacts in one batch and applies the deletions.
func (s *Syncer) Run(ctx context.Context, scope Scope) error {
	pager := nango.Paginate(s.proxy, nango.ProxyRequest{
		Endpoint:          "users.list",
		ConnectionID:      scope.ConnectionID,
		ProviderConfigKey: scope.ProviderConfigKey,
		Retries:           s.retries,
		Params: map[string]string{
			"limit": strconv.Itoa(s.pageLimit),
		},
	}, nango.Pagination{
		ResponsePath: "members",
		CursorPath:   "response_metadata.next_cursor",
	})

	mapScope := contacts.MapScope{
		ConnectionID:  scope.ConnectionID,
		IntegrationID: scope.ProviderConfigKey,
	}

	var batch []models.Contact
	var deleted []string
	for {
		page, err := pager.Next(ctx)
		if err != nil {
			return err
		}
		if page == nil {
			break
		}

		for _, raw := range page {
			var member contacts.SlackMember
			if err := json.Unmarshal(raw, &member); err != nil {
				s.logger.Warn("Skipping undecodable Slack member", zap.Error(err))
				continue
			}
			if member.IsBot {
				continue
			}
			if member.Deleted {
				// Deactivated members often lose their profile, so only the
				// id is carried through.
				if member.ID != "" {
					deleted = append(deleted, member.ID)
				}
				continue
			}

			contact, err := contacts.MapMember(member, mapScope)
			if err != nil {
				s.logger.Warn("Skipping unmappable Slack member", zap.Error(err))
				continue
			}
			batch = append(batch, contact)
		}
	}

	s.logger.Info("Slack sync fetched members",
		zap.Int("count", len(batch)), zap.Int("deleted", len(deleted)))
	if err := s.sink.SaveContacts(ctx, batch); err != nil {
		return err
	}
	if len(deleted) == 0 {
		return nil
	}
	return s.sink.DeleteContacts(ctx, deleted)
}
