// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockstate

import (
	"time"

	"github.com/bitmark-inc/ledgerdb/fault"
	"github.com/bitmark-inc/ledgerdb/util"
)

const nanosecondsPerSecond = 1000000000

// PackTime - record form of a UTC time stamp
func PackTime(t time.Time) []byte {
	p := new(util.Packer)
	packTime(p, t)
	return p.Bytes()
}

// UnpackTime - restore a UTC time stamp
func UnpackTime(record []byte) (time.Time, error) {
	u := util.NewUnpacker(record)
	t := unpackTime(u)
	if err := u.Done(); nil != err {
		return time.Time{}, err
	}
	return t, nil
}

func packTime(p *util.Packer, t time.Time) {
	p.PutInt64(t.Unix())
	p.PutUint64(uint64(t.Nanosecond()))
}

func unpackTime(u *util.Unpacker) time.Time {
	seconds := u.Int64()
	nanoseconds := u.Uint64()
	if nil != u.Err() {
		return time.Time{}
	}
	if nanoseconds >= nanosecondsPerSecond {
		u.Fail(fault.CodingError("time stamp nanoseconds out of range"))
		return time.Time{}
	}
	return time.Unix(seconds, int64(nanoseconds)).UTC()
}
