// Copyright 2026 News Article Agent Authors
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


package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// Hand-written MUS serializers for the persisted domain types. The wire
// format is: varint for IDs and lengths, length-prefixed strings, raw
// float32 vector elements, and Unix-microsecond timestamps.

// IDMUS serializes an ID as a varint.
var IDMUS = idMUS{}

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

// timeMicroMUS serializes a time.Time as Unix microseconds (UTC).
type timeMicroMUS struct{}

var timeMUS = timeMicroMUS{}

func (timeMicroMUS) Marshal(t time.Time, bs []byte) int {
	return raw.Int64.Marshal(t.UnixMicro(), bs)
}

func (timeMicroMUS) Unmarshal(bs []byte) (time.Time, int, error) {
	micros, n, err := raw.Int64.Unmarshal(bs)
	if err != nil {
		return time.Time{}, n, err
	}
	return time.UnixMicro(micros).UTC(), n, nil
}

func (timeMicroMUS) Size(t time.Time) int {
	return raw.Int64.Size(t.UnixMicro())
}

// vectorMUS serializes an embedding vector as a length-prefixed sequence
// of raw float32 values.
type float32SliceMUS struct{}

var vectorMUS = float32SliceMUS{}

func (float32SliceMUS) Marshal(v []float32, bs []byte) (n int) {
	n = varint.PositiveInt.Marshal(len(v), bs)
	for _, f := range v {
		n += raw.Float32.Marshal(f, bs[n:])
	}
	return n
}

func (float32SliceMUS) Unmarshal(bs []byte) ([]float32, int, error) {
	length, n, err := varint.PositiveInt.Unmarshal(bs)
	if err != nil {
		return nil, n, err
	}
	if length == 0 {
		return nil, n, nil
	}
	v := make([]float32, length)
	for i := 0; i < length; i++ {
		f, fn, err := raw.Float32.Unmarshal(bs[n:])
		n += fn
		if err != nil {
			return nil, n, err
		}
		v[i] = f
	}
	return v, n, nil
}

func (float32SliceMUS) Size(v []float32) (size int) {
	size = varint.PositiveInt.Size(len(v))
	for _, f := range v {
		size += raw.Float32.Size(f)
	}
	return size
}

// ArticleRecordMUS serializes an ArticleRecord field by field in
// declaration order.
var ArticleRecordMUS = articleRecordMUS{}

type articleRecordMUS struct{}

func (articleRecordMUS) Marshal(a ArticleRecord, bs []byte) (n int) {
	n = IDMUS.Marshal(a.Id, bs)
	n += ord.String.Marshal(a.URL, bs[n:])
	n += ord.String.Marshal(a.Title, bs[n:])
	n += ord.String.Marshal(a.Content, bs[n:])
	n += ord.String.Marshal(a.Summary, bs[n:])
	n += ord.String.Marshal(a.Source, bs[n:])
	n += timeMUS.Marshal(a.PublishedAt, bs[n:])
	n += timeMUS.Marshal(a.CreatedAt, bs[n:])
	n += vectorMUS.Marshal(a.Vector, bs[n:])
	return n
}

func (articleRecordMUS) Unmarshal(bs []byte) (a ArticleRecord, n int, err error) {
	var m int
	if a.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return a, n, err
	}
	if a.URL, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return a, n + m, err
	}
	n += m
	if a.Title, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return a, n + m, err
	}
	n += m
	if a.Content, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return a, n + m, err
	}
	n += m
	if a.Summary, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return a, n + m, err
	}
	n += m
	if a.Source, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return a, n + m, err
	}
	n += m
	if a.PublishedAt, m, err = timeMUS.Unmarshal(bs[n:]); err != nil {
		return a, n + m, err
	}
	n += m
	if a.CreatedAt, m, err = timeMUS.Unmarshal(bs[n:]); err != nil {
		return a, n + m, err
	}
	n += m
	if a.Vector, m, err = vectorMUS.Unmarshal(bs[n:]); err != nil {
		return a, n + m, err
	}
	n += m
	return a, n, nil
}

func (articleRecordMUS) Size(a ArticleRecord) (size int) {
	size = IDMUS.Size(a.Id)
	size += ord.String.Size(a.URL)
	size += ord.String.Size(a.Title)
	size += ord.String.Size(a.Content)
	size += ord.String.Size(a.Summary)
	size += ord.String.Size(a.Source)
	size += timeMUS.Size(a.PublishedAt)
	size += timeMUS.Size(a.CreatedAt)
	size += vectorMUS.Size(a.Vector)
	return size
}
