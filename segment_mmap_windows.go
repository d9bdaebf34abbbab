// Copyright 2011 Evan Shaw. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE-MMAP-GO file.

// Modifications (c) 2017 The Memory Authors.

package segalloc

import (
	"errors"
	"os"
	"syscall"
	"unsafe"
)

// mmap on Windows is a two-step process: CreateFileMapping for a handle,
// then MapViewOfFile for an actual pointer into memory. handleMap lets
// unmap recover the handle for a previously mapped address.
var handleMap = map[uintptr]syscall.Handle{}

func mmap(size int) ([]byte, error) {
	flProtect := uint32(syscall.PAGE_READWRITE)
	dwDesiredAccess := uint32(syscall.FILE_MAP_WRITE)

	maxSizeHigh := uint32(int64(size) >> 32)
	maxSizeLow := uint32(int64(size) & 0xFFFFFFFF)
	h, errno := syscall.CreateFileMapping(syscall.Handle(^uintptr(0)), nil, flProtect, maxSizeHigh, maxSizeLow, nil)
	if h == 0 {
		return nil, os.NewSyscallError("CreateFileMapping", errno)
	}

	addr, errno := syscall.MapViewOfFile(h, dwDesiredAccess, 0, 0, uintptr(size))
	if addr == 0 {
		return nil, os.NewSyscallError("MapViewOfFile", errno)
	}

	if addr&uintptr(os.Getpagesize()-1) != 0 {
		panic("segalloc: mmap returned a non-page-aligned address")
	}

	handleMap[addr] = h
	b := unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)
	return b, nil
}

func unmap(addr uintptr, size int) error {
	err := syscall.UnmapViewOfFile(addr)
	if err != nil {
		return err
	}

	handle, ok := handleMap[addr]
	if !ok {
		return errors.New("segalloc: unknown mapping base address")
	}
	delete(handleMap, addr)

	e := syscall.CloseHandle(handle)
	return os.NewSyscallError("CloseHandle", e)
}
