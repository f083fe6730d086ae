// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"reflect"

	"github.com/yuin/gluamapper"
	lua "github.com/yuin/gopher-lua"

	"github.com/bitmark-inc/ledgerdb/fault"
)

// mapping of Lua table keys onto struct fields
var mapper = gluamapper.Mapper{
	Option: gluamapper.Option{
		NameFunc: func(s string) string {
			return s
		},
		TagName: "gluamapper",
	},
}

// ParseConfigurationFile - execute a Lua configuration file and map
// the table it returns onto a configuration structure
//
// the script sees arg[0] as its own file name and each variable as a
// global string
func ParseConfigurationFile(fileName string, config interface{}, variables map[string]string) error {

	rv := reflect.ValueOf(config)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fault.ErrInvalidStructPointer
	}

	L := newState(fileName, variables)
	defer L.Close()

	if err := L.DoFile(fileName); nil != err {
		return err
	}

	table, ok := L.Get(-1).(*lua.LTable)
	if !ok {
		return fault.ErrInvalidConfiguration
	}
	return mapper.Map(table, config)
}

func newState(fileName string, variables map[string]string) *lua.LState {
	L := lua.NewState()
	L.OpenLibs()

	arg := L.NewTable()
	L.RawSetInt(arg, 0, lua.LString(fileName))
	L.SetGlobal("arg", arg)

	for name, value := range variables {
		L.SetGlobal(name, lua.LString(value))
	}
	return L
}
