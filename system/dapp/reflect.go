// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dapp

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"
)

var typeOfError = reflect.TypeOf((*error)(nil)).Elem()

// Is this an exported - upper case - name?
func isExported(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}

// ListMethod 列出 Exec_ 和 Query_ 开头的导出方法
func ListMethod(action interface{}) map[string]reflect.Method {
	typ := reflect.TypeOf(action)
	methods := make(map[string]reflect.Method)
	for m := 0; m < typ.NumMethod(); m++ {
		method := typ.Method(m)
		mname := method.Name
		// Method must be exported.
		if method.PkgPath != "" || !isExported(mname) {
			continue
		}
		if strings.HasPrefix(mname, "Exec_") || strings.HasPrefix(mname, "Query_") {
			methods[mname] = method
		}
	}
	return methods
}

// isOK 返回值个数正确, 并且最后一个返回值是 error
func isOK(list []reflect.Value, n int) bool {
	if len(list) != n {
		return false
	}
	return list[n-1].Type().Implements(typeOfError) || list[n-1].Type() == typeOfError
}
