// Package assets хранит загруженные картинки товаров на диске.
// Имена файлов выводятся из оригинальных: базовое имя чистится от
// небезопасных символов, к нему добавляется UTC-метка с точностью до
// микросекунды, поэтому повторные загрузки одного и того же файла не
// затирают друг друга.
package assets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// Лимит в 12 МиБ обязан отсечь транспортный слой до вызова Save
// (http.MaxBytesReader в middleware); здесь он не проверяется.

var allowedExt = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

type Manager struct {
	dir string

	mu   sync.Mutex
	last time.Time // метка последнего сохранения, для уникальности имён
}

func NewManager(dir string) *Manager {
	return &Manager{dir: dir}
}

// Dir возвращает каталог хранения (его раздаёт статикой транспортный слой).
func (m *Manager) Dir() string { return m.dir }

// Save сохраняет загрузку и возвращает итоговое имя файла.
// Пустое имя или неподдерживаемое расширение — не ошибка: возвращается "",
// и вызывающий просто остаётся без картинки.
func (m *Manager) Save(name string, r io.Reader) (string, error) {
	if name == "" || r == nil {
		return "", nil
	}
	ext := strings.ToLower(filepath.Ext(name))
	if !allowedExt[ext] {
		return "", nil
	}

	base := sanitizeBase(strings.TrimSuffix(filepath.Base(name), filepath.Ext(name)))
	stamp := m.nextStamp()
	final := fmt.Sprintf("%s_%s%06d%s", base, stamp.Format("20060102150405"), stamp.Nanosecond()/1000, ext)

	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return "", errors.Wrap(err, "create upload dir")
	}
	dst := filepath.Join(m.dir, final)
	f, err := os.Create(dst)
	if err != nil {
		return "", errors.Wrap(err, "create file")
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(dst)
		return "", errors.Wrap(err, "write file")
	}
	if err := f.Close(); err != nil {
		os.Remove(dst)
		return "", errors.Wrap(err, "close file")
	}
	return final, nil
}

// Delete удаляет файл. Отсутствие файла — не ошибка, удаление идемпотентно.
func (m *Manager) Delete(name string) error {
	if name == "" {
		return nil
	}
	if filepath.Base(name) != name {
		return errors.Errorf("refusing to delete %q: not a bare filename", name)
	}
	if err := os.Remove(filepath.Join(m.dir, name)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "remove file")
	}
	return nil
}

// sanitizeBase оставляет только [A-Za-z0-9._-]; пустой остаток заменяется
// на "upload", чтобы имя никогда не начиналось с разделителя или метки.
func sanitizeBase(base string) string {
	base = unsafeChars.ReplaceAllString(base, "_")
	base = strings.Trim(base, "._-")
	if base == "" {
		base = "upload"
	}
	return base
}

// nextStamp выдаёт строго возрастающие микросекундные метки: два сохранения
// внутри одной микросекунды всё равно получают разные имена.
func (m *Manager) nextStamp() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC().Truncate(time.Microsecond)
	if !now.After(m.last) {
		now = m.last.Add(time.Microsecond)
	}
	m.last = now
	return now
}
