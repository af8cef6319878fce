// Copyright 2025 Arion Yau
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// cachedReply is a reply remembered for a webhook delivery id
type cachedReply struct {
	Reply     CommandReply
	Timestamp time.Time
}

// ReplyCache remembers replies by command and delivery id so a redelivered
// webhook does not issue its RPC call twice
type ReplyCache struct {
	cache      *lru.Cache[string, *cachedReply]
	maxSize    int
	expiration time.Duration
	now        func() time.Time
}

// NewReplyCache creates a reply cache
func NewReplyCache(maxSize int, expiration time.Duration) *ReplyCache {
	if maxSize <= 0 {
		maxSize = 256
	}
	if expiration <= 0 {
		expiration = 10 * time.Minute
	}

	// lru.New only fails for a non-positive size
	cache, _ := lru.New[string, *cachedReply](maxSize)

	return &ReplyCache{
		cache:      cache,
		maxSize:    maxSize,
		expiration: expiration,
		now:        time.Now,
	}
}

// replyKey scopes a delivery id to one chat command
func replyKey(command, deliveryID string) string {
	return command + "\x00" + deliveryID
}

// Get returns the reply stored for command and deliveryID if it has not
// expired
func (rc *ReplyCache) Get(command, deliveryID string) (CommandReply, bool) {
	if deliveryID == "" {
		return CommandReply{}, false
	}

	key := replyKey(command, deliveryID)
	cached, found := rc.cache.Get(key)
	if !found {
		return CommandReply{}, false
	}

	if rc.now().Sub(cached.Timestamp) > rc.expiration {
		rc.cache.Remove(key)
		return CommandReply{}, false
	}

	return cached.Reply, true
}

// Store remembers reply for command and deliveryID. Empty ids are ignored.
func (rc *ReplyCache) Store(command, deliveryID string, reply CommandReply) {
	if deliveryID == "" {
		return
	}

	rc.cache.Add(replyKey(command, deliveryID), &cachedReply{
		Reply:     reply,
		Timestamp: rc.now(),
	})
}

// PruneExpired drops expired entries and returns how many were removed
func (rc *ReplyCache) PruneExpired() int {
	now := rc.now()
	removed := 0

	for _, id := range rc.cache.Keys() {
		if cached, found := rc.cache.Peek(id); found {
			if now.Sub(cached.Timestamp) > rc.expiration {
				rc.cache.Remove(id)
				removed++
			}
		}
	}

	return removed
}

// Len returns the number of cached replies
func (rc *ReplyCache) Len() int {
	return rc.cache.Len()
}

// Stats returns cache statistics
func (rc *ReplyCache) Stats() map[string]interface{} {
	return map[string]interface{}{
		"cached_replies": rc.cache.Len(),
		"max_size":       rc.maxSize,
		"expiration":     rc.expiration.String(),
	}
}

// Purge drops every cached reply
func (rc *ReplyCache) Purge() {
	rc.cache.Purge()
}
