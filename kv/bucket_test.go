// Copyright (c) 2026 The Meridian developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meridianchain/meridian/kv"
	"github.com/meridianchain/meridian/lvldb"
)

func TestBucket(t *testing.T) {
	db, err := lvldb.NewMem()
	assert.Nil(t, err)
	defer db.Close()

	b1 := kv.Bucket("b1-").NewStore(db)
	b2 := kv.Bucket("b2-").NewStore(db)

	assert.Nil(t, b1.Put([]byte("key"), []byte("in-b1")))
	assert.Nil(t, b2.Put([]byte("key"), []byte("in-b2")))

	v1, err := b1.Get([]byte("key"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("in-b1"), v1)

	v2, err := b2.Get([]byte("key"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("in-b2"), v2)

	// raw keys are prefixed
	raw, err := db.Get([]byte("b1-key"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("in-b1"), raw)

	_, err = b1.Get([]byte("missing"))
	assert.True(t, b1.IsNotFound(err))
}

func TestBucketIterate(t *testing.T) {
	db, err := lvldb.NewMem()
	assert.Nil(t, err)
	defer db.Close()

	bucket := kv.Bucket("x-").NewStore(db)
	assert.Nil(t, bucket.Put([]byte("a"), []byte("1")))
	assert.Nil(t, bucket.Put([]byte("b"), []byte("2")))
	assert.Nil(t, db.Put([]byte("y-c"), []byte("3")))

	iter := bucket.Iterate(kv.Range{})
	defer iter.Release()

	var keys []string
	for iter.Next() {
		keys = append(keys, string(iter.Key()))
	}
	assert.Nil(t, iter.Error())
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestBucketBatch(t *testing.T) {
	db, err := lvldb.NewMem()
	assert.Nil(t, err)
	defer db.Close()

	bucket := kv.Bucket("x-").NewStore(db)
	batch := bucket.NewBatch()
	assert.Nil(t, batch.Put([]byte("k"), []byte("v")))
	assert.Nil(t, batch.Write())

	raw, err := db.Get([]byte("x-k"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("v"), raw)
}
