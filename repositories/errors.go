package repositories

import "errors"

// ErrNotFound kayıt bulunamadığında tüm repository'lerin döndürdüğü ortak hata.
var ErrNotFound = errors.New("kayıt bulunamadı")
