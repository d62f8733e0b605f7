package worker

import "errors"

var (
	// ErrInit ошибка инициализации курсора, после которой опрос невозможен
	ErrInit = errors.New("worker.poller: init failed")
	// ErrFetch ошибка запроса getUpdates
	ErrFetch = errors.New("worker.poller: fetch updates failed")
	// ErrDispatch ошибка обработки обновления, оставшаяся часть пачки пропущена
	ErrDispatch = errors.New("worker.poller: dispatch failed")
	// ErrSchedule ошибка запуска периодического сохранения курсора
	ErrSchedule = errors.New("worker.checkpointer: schedule failed")
)
