package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/HMS-ScheduleService/internal/domain"
	"github.com/m04kA/HMS-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/HMS-ScheduleService/pkg/psqlbuilder"
	"github.com/m04kA/HMS-ScheduleService/pkg/types"
)

// Коды ошибок PostgreSQL
const (
	// Нарушение ограничения уникальности
	pgUniqueViolation = "23505"
	// Сбой сериализации конкурентных транзакций
	pgSerializationFailure = "40001"
)

var recordColumns = []string{
	"id",
	"doctor_id",
	"kind",
	"day_of_week",
	// Дата выбирается текстом, чтобы сканироваться напрямую в types.DateString
	"date::text AS date",
	"is_active",
	"created_by",
	"updated_by",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями доступности врачей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись доступности вместе со слотами.
// Если в контексте передана активная транзакция, использует её.
// Ограничение уникальности активной записи на ключ (частичный уникальный
// индекс) конвертируется в ErrDuplicateActiveRecord - это защита от гонки
// при конкурентной материализации.
func (r *Repository) Create(ctx context.Context, record *domain.AvailabilityRecord) (*domain.AvailabilityRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability_records").
		Columns(
			"doctor_id",
			"kind",
			"day_of_week",
			"date",
			"is_active",
			"created_by",
			"updated_by",
		).
		Values(
			record.DoctorID,
			record.Kind,
			record.DayOfWeek,
			record.Date,
			record.IsActive,
			record.CreatedBy,
			record.UpdatedBy,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&record.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateActiveRecord
		}
		return nil, dbError(ErrExecQuery, "Create - execute insert", err)
	}

	record.CreatedAt = createdAt.Time
	record.UpdatedAt = updatedAt.Time

	if err := r.insertSlots(ctx, executor, record.ID, record.Slots); err != nil {
		return nil, err
	}

	return record, nil
}

// GetByID получает запись доступности по ID вместе со слотами
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AvailabilityRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(recordColumns...).
		From("availability_records").
		Where(squirrel.Eq{"id": id})

	// Внутри транзакции блокируем запись на время операции
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	record, err := r.scanRecordRow(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, dbError(ErrScanRow, "GetByID - scan record", err)
	}

	if err := r.loadSlots(ctx, executor, []*domain.AvailabilityRecord{record}); err != nil {
		return nil, err
	}

	return record, nil
}

// GetActiveSingle получает активную разовую запись для (врач, дата).
// Если активных записей больше одной - нарушен инвариант хранилища,
// возвращается ErrActiveRecordConflict.
func (r *Repository) GetActiveSingle(ctx context.Context, doctorID int64, date types.DateString) (*domain.AvailabilityRecord, error) {
	return r.getActiveByKey(ctx, squirrel.Eq{
		"doctor_id": doctorID,
		"kind":      domain.KindSingle,
		"date":      date,
		"is_active": true,
	}, "GetActiveSingle")
}

// GetActiveRecurring получает активную еженедельную запись для (врач, день недели)
func (r *Repository) GetActiveRecurring(ctx context.Context, doctorID int64, day domain.DayOfWeek) (*domain.AvailabilityRecord, error) {
	return r.getActiveByKey(ctx, squirrel.Eq{
		"doctor_id":   doctorID,
		"kind":        domain.KindRecurring,
		"day_of_week": day,
		"is_active":   true,
	}, "GetActiveRecurring")
}

// FindInactiveRecurring ищет последнюю деактивированную еженедельную запись
// для (врач, день недели). Используется для идемпотентного редактирования
// шаблона: вместо накопления дубликатов запись реактивируется.
func (r *Repository) FindInactiveRecurring(ctx context.Context, doctorID int64, day domain.DayOfWeek) (*domain.AvailabilityRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(recordColumns...).
		From("availability_records").
		Where(squirrel.Eq{
			"doctor_id":   doctorID,
			"kind":        domain.KindRecurring,
			"day_of_week": day,
			"is_active":   false,
		}).
		OrderBy("updated_at DESC").
		Limit(1)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindInactiveRecurring - build select query: %v", ErrBuildQuery, err)
	}

	record, err := r.scanRecordRow(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, dbError(ErrScanRow, "FindInactiveRecurring - scan record", err)
	}

	if err := r.loadSlots(ctx, executor, []*domain.AvailabilityRecord{record}); err != nil {
		return nil, err
	}

	return record, nil
}

// ListFilter фильтр для выборки записей доступности
type ListFilter struct {
	DoctorID  *int64
	Kind      *domain.AvailabilityKind
	DayOfWeek *domain.DayOfWeek
	Date      *types.DateString
	// OnlyActive ограничивает выборку активными записями
	OnlyActive bool
	// OnlyWithSlots отбрасывает записи без слотов (блокировки дат)
	OnlyWithSlots bool
}

// List получает записи доступности по фильтру вместе со слотами.
// Результат упорядочен по (kind, day_of_week, date, doctor_id) для
// детерминированного представления независимо от порядка вставки.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]*domain.AvailabilityRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(recordColumns...).
		From("availability_records")

	if filter.DoctorID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"doctor_id": *filter.DoctorID})
	}
	if filter.Kind != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"kind": *filter.Kind})
	}
	if filter.DayOfWeek != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"day_of_week": *filter.DayOfWeek})
	}
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"date": *filter.Date})
	}
	if filter.OnlyActive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	selectBuilder = selectBuilder.OrderBy("kind ASC", "day_of_week ASC NULLS LAST", "date ASC NULLS LAST", "doctor_id ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbError(ErrExecQuery, "List - execute query", err)
	}
	defer rows.Close()

	records, err := r.scanRecords(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadSlots(ctx, executor, records); err != nil {
		return nil, err
	}

	if filter.OnlyWithSlots {
		withSlots := make([]*domain.AvailabilityRecord, 0, len(records))
		for _, record := range records {
			if len(record.Slots) > 0 {
				withSlots = append(withSlots, record)
			}
		}
		records = withSlots
	}

	return records, nil
}

// Deactivate деактивирует запись доступности.
// Записи никогда не удаляются физически: деактивация сохраняет историю изменений.
func (r *Repository) Deactivate(ctx context.Context, id int64, updatedBy int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("availability_records").
		Set("is_active", false).
		Set("updated_by", updatedBy).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "is_active": true}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return dbError(ErrExecQuery, "Deactivate - execute update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// ReactivateWithSlots реактивирует запись и полностью заменяет её слоты.
// Применяется только к еженедельным шаблонам: их слоты никогда не бронируются
// (бронирование материализует разовую запись), поэтому замена безопасна.
func (r *Repository) ReactivateWithSlots(ctx context.Context, id int64, slots []domain.TimeSlot, updatedBy int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("availability_records").
		Set("is_active", true).
		Set("updated_by", updatedBy).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReactivateWithSlots - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateActiveRecord
		}
		return dbError(ErrExecQuery, "ReactivateWithSlots - execute update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ReactivateWithSlots - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRecordNotFound
	}

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("availability_slots").
		Where(squirrel.Eq{"record_id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReactivateWithSlots - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return dbError(ErrExecQuery, "ReactivateWithSlots - delete old slots", err)
	}

	return r.insertSlots(ctx, executor, id, slots)
}

// MarkSlotBooked помечает слот забронированным.
// Условие is_booked = false в запросе гарантирует, что двойное бронирование
// одного слота невозможно: второй запрос не затронет ни одной строки.
func (r *Repository) MarkSlotBooked(ctx context.Context, recordID int64, slotIndex int) error {
	return r.setSlotBooked(ctx, recordID, slotIndex, true)
}

// MarkSlotFree освобождает слот.
// Используется только как компенсация при сбое создания записи
// в журнале приёмов после бронирования.
func (r *Repository) MarkSlotFree(ctx context.Context, recordID int64, slotIndex int) error {
	return r.setSlotBooked(ctx, recordID, slotIndex, false)
}

// RemoveSlot удаляет слот из записи по индексу.
// Забронированный слот удалить нельзя - возвращается ErrSlotBooked.
// Индексы последующих слотов сдвигаются, чтобы нумерация осталась плотной.
func (r *Repository) RemoveSlot(ctx context.Context, recordID int64, slotIndex int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// Удаляем только незабронированный слот
	query, args, err := psqlbuilder.Delete("availability_slots").
		Where(squirrel.Eq{
			"record_id":  recordID,
			"slot_index": slotIndex,
			"is_booked":  false,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: RemoveSlot - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return dbError(ErrExecQuery, "RemoveSlot - execute delete", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: RemoveSlot - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		// Различаем "слот не найден" и "слот забронирован"
		booked, err := r.slotIsBooked(ctx, executor, recordID, slotIndex)
		if err != nil {
			return err
		}
		if booked {
			return ErrSlotBooked
		}
		return ErrSlotNotFound
	}

	// Сдвигаем индексы оставшихся слотов
	reindexQuery, reindexArgs, err := psqlbuilder.Update("availability_slots").
		Set("slot_index", squirrel.Expr("slot_index - 1")).
		Where(squirrel.Eq{"record_id": recordID}).
		Where(squirrel.Gt{"slot_index": slotIndex}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: RemoveSlot - build reindex query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, reindexQuery, reindexArgs...); err != nil {
		return dbError(ErrExecQuery, "RemoveSlot - reindex slots", err)
	}

	return nil
}

// getActiveByKey получает единственную активную запись по ключу.
// Выбирает до двух строк: вторая строка означает нарушение инварианта
// "не больше одной активной записи на ключ".
func (r *Repository) getActiveByKey(ctx context.Context, key squirrel.Eq, method string) (*domain.AvailabilityRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(recordColumns...).
		From("availability_records").
		Where(key).
		Limit(2)

	// Внутри транзакции блокируем запись (usecase бронирования)
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbError(ErrExecQuery, method+" - execute query", err)
	}
	defer rows.Close()

	records, err := r.scanRecords(rows)
	if err != nil {
		return nil, err
	}

	switch len(records) {
	case 0:
		return nil, ErrRecordNotFound
	case 1:
		// Ожидаемый случай
	default:
		return nil, ErrActiveRecordConflict
	}

	record := records[0]
	if err := r.loadSlots(ctx, executor, []*domain.AvailabilityRecord{record}); err != nil {
		return nil, err
	}

	return record, nil
}

// setSlotBooked переключает флаг бронирования слота.
// Запрос срабатывает только при фактическом изменении флага.
func (r *Repository) setSlotBooked(ctx context.Context, recordID int64, slotIndex int, booked bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("availability_slots").
		Set("is_booked", booked).
		Where(squirrel.Eq{
			"record_id":  recordID,
			"slot_index": slotIndex,
			"is_booked":  !booked,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: setSlotBooked - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return dbError(ErrExecQuery, "setSlotBooked - execute update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: setSlotBooked - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		exists, err := r.slotExists(ctx, executor, recordID, slotIndex)
		if err != nil {
			return err
		}
		if !exists {
			return ErrSlotNotFound
		}
		if booked {
			return ErrSlotAlreadyBooked
		}
		// Слот уже свободен - компенсация идемпотентна
		return nil
	}

	return nil
}

// insertSlots вставляет слоты записи одним запросом с плотной нумерацией индексов
func (r *Repository) insertSlots(ctx context.Context, executor DBExecutor, recordID int64, slots []domain.TimeSlot) error {
	if len(slots) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("availability_slots").
		Columns("record_id", "slot_index", "start_time", "end_time", "is_booked")

	for i, slot := range slots {
		insertBuilder = insertBuilder.Values(recordID, i, slot.StartTime, slot.EndTime, slot.IsBooked)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertSlots - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return dbError(ErrExecQuery, "insertSlots - execute insert", err)
	}

	return nil
}

// loadSlots загружает слоты для набора записей одним запросом
func (r *Repository) loadSlots(ctx context.Context, executor DBExecutor, records []*domain.AvailabilityRecord) error {
	if len(records) == 0 {
		return nil
	}

	ids := make([]int64, len(records))
	byID := make(map[int64]*domain.AvailabilityRecord, len(records))
	for i, record := range records {
		ids[i] = record.ID
		byID[record.ID] = record
		record.Slots = make([]domain.TimeSlot, 0)
	}

	query, args, err := psqlbuilder.Select(
		"record_id",
		"start_time",
		"end_time",
		"is_booked",
	).
		From("availability_slots").
		Where(squirrel.Eq{"record_id": ids}).
		OrderBy("record_id ASC", "slot_index ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: loadSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return dbError(ErrExecQuery, "loadSlots - execute query", err)
	}
	defer rows.Close()

	for rows.Next() {
		var recordID int64
		var slot domain.TimeSlot

		if err := rows.Scan(&recordID, &slot.StartTime, &slot.EndTime, &slot.IsBooked); err != nil {
			return dbError(ErrScanRow, "loadSlots - scan slot", err)
		}

		if record, ok := byID[recordID]; ok {
			record.Slots = append(record.Slots, slot)
		}
	}

	if err := rows.Err(); err != nil {
		return dbError(ErrScanRow, "loadSlots - rows error", err)
	}

	return nil
}

// slotExists проверяет существование слота
func (r *Repository) slotExists(ctx context.Context, executor DBExecutor, recordID int64, slotIndex int) (bool, error) {
	query, args, err := psqlbuilder.Select("1").
		From("availability_slots").
		Where(squirrel.Eq{"record_id": recordID, "slot_index": slotIndex}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: slotExists - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, dbError(ErrScanRow, "slotExists - scan", err)
	}

	return true, nil
}

// slotIsBooked проверяет флаг бронирования слота
func (r *Repository) slotIsBooked(ctx context.Context, executor DBExecutor, recordID int64, slotIndex int) (bool, error) {
	query, args, err := psqlbuilder.Select("is_booked").
		From("availability_slots").
		Where(squirrel.Eq{"record_id": recordID, "slot_index": slotIndex}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: slotIsBooked - build select query: %v", ErrBuildQuery, err)
	}

	var booked bool
	err = executor.QueryRowContext(ctx, query, args...).Scan(&booked)
	if errors.Is(err, sql.ErrNoRows) {
		return false, ErrSlotNotFound
	}
	if err != nil {
		return false, dbError(ErrScanRow, "slotIsBooked - scan", err)
	}

	return booked, nil
}

// scanRecordRow сканирует одну запись из *sql.Row
func (r *Repository) scanRecordRow(row *sql.Row) (*domain.AvailabilityRecord, error) {
	var record domain.AvailabilityRecord
	var dayOfWeek sql.NullString
	var date sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&record.ID,
		&record.DoctorID,
		&record.Kind,
		&dayOfWeek,
		&date,
		&record.IsActive,
		&record.CreatedBy,
		&record.UpdatedBy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	applyNullable(&record, dayOfWeek, date, createdAt, updatedAt)
	return &record, nil
}

// scanRecords сканирует записи из *sql.Rows
func (r *Repository) scanRecords(rows *sql.Rows) ([]*domain.AvailabilityRecord, error) {
	records := make([]*domain.AvailabilityRecord, 0)

	for rows.Next() {
		var record domain.AvailabilityRecord
		var dayOfWeek sql.NullString
		var date sql.NullString
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&record.ID,
			&record.DoctorID,
			&record.Kind,
			&dayOfWeek,
			&date,
			&record.IsActive,
			&record.CreatedBy,
			&record.UpdatedBy,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, dbError(ErrScanRow, "scanRecords - scan row", err)
		}

		applyNullable(&record, dayOfWeek, date, createdAt, updatedAt)
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, dbError(ErrScanRow, "scanRecords - rows error", err)
	}

	return records, nil
}

// applyNullable переносит nullable-колонки в доменную модель
func applyNullable(record *domain.AvailabilityRecord, dayOfWeek, date sql.NullString, createdAt, updatedAt sql.NullTime) {
	if dayOfWeek.Valid {
		day := domain.DayOfWeek(dayOfWeek.String)
		record.DayOfWeek = &day
	}
	if date.Valid {
		// Колонка date сканируется как строка "YYYY-MM-DD"
		d := types.DateString(date.String)
		record.Date = &d
	}
	record.CreatedAt = createdAt.Time
	record.UpdatedAt = updatedAt.Time
}

// isUniqueViolation распознает нарушение ограничения уникальности PostgreSQL
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolation
	}
	return false
}

// isSerializationFailure распознает прерывание сериализуемой транзакции
func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgSerializationFailure
	}
	return false
}

// dbError конвертирует ошибку драйвера в ошибку репозитория.
// Сбой сериализации поднимается сентинелом ErrSerializationFailure до
// оборачивания: обертка через %v обрывает цепочку pq.Error, и конфликт
// конкурентных транзакций стал бы неотличим от внутренней ошибки.
func dbError(sentinel error, step string, err error) error {
	if isSerializationFailure(err) {
		return ErrSerializationFailure
	}
	return fmt.Errorf("%w: %s: %v", sentinel, step, err)
}
