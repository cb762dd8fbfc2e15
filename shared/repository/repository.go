// Package repository holds the generic table access shared by every domain
// repository and the transaction runner they join.
package repository

import (
	"careops/infras/otel"
	"careops/infras/postgres"
	"careops/shared/constant"
	"careops/shared/dto"
	"careops/shared/logger"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/jmoiron/sqlx"
)

var (
	errRequiredFilter = errors.New("required filter")
	errEmptyUpdate    = errors.New("no columns to update")
)

// runner is satisfied by both *sqlx.DB and *sqlx.Tx.
type runner interface {
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
	PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
}

// joinProvider is implemented by read models spanning several tables, such as
// a booking together with its contact and service.
type joinProvider interface {
	GetJoinQuery() string
}

type column struct {
	name  string
	table string
	alias string
}

func (c column) selectExpr() string {
	expr := c.table + "." + c.name
	if c.alias != "" {
		expr += " AS " + c.alias
	}

	return expr
}

// Repository maps T to table through its db tags. Fields tagged with a foreign
// table are only read, never inserted.
type Repository[T any] struct {
	db            *postgres.Connection
	otel          otel.Otel
	entity        string
	table         string
	primaryColumn string
	columns       []column
	join          string
	insertQuery   string
}

func NewRepository[T any](entityName, tableName, primaryColumn string, dbConnection *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	columns := collectColumns(tableName, reflect.TypeOf(zero))

	join := ""
	if provider, ok := any(zero).(joinProvider); ok {
		join = provider.GetJoinQuery()
	}

	return Repository[T]{
		db:            dbConnection,
		otel:          otl,
		entity:        entityName,
		table:         tableName,
		primaryColumn: primaryColumn,
		columns:       columns,
		join:          join,
		insertQuery:   buildInsertQuery(tableName, columns),
	}
}

func (repo *Repository[T]) scope(ctx context.Context, op, query string) (context.Context, otel.Scope) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName,
		constant.OtelRepositoryScopeName+"."+repo.entity+"."+op)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	return ctx, scope
}

func (repo *Repository[T]) fail(scope otel.Scope, op string, err error) error {
	logger.ErrorWithStack(err)
	scope.TraceError(err)

	return fmt.Errorf("failed to %s %s: %w", op, repo.entity, err)
}

func (repo *Repository[T]) exec(ctx context.Context, run runner, op, query string, arg any) error {
	ctx, scope := repo.scope(ctx, op, query)
	defer scope.End()

	if _, err := run.NamedExecContext(ctx, query, arg); err != nil {
		return repo.fail(scope, op, err)
	}

	return nil
}

// query prepares the statement and hands it to scan. sql.ErrNoRows is
// returned untouched so single row reads can map it to a miss.
func (repo *Repository[T]) query(ctx context.Context, run runner, op, query string, scan func(context.Context, *sqlx.NamedStmt) error) error {
	ctx, scope := repo.scope(ctx, op, query)
	defer scope.End()

	stmt, err := run.PrepareNamedContext(ctx, query)
	if err != nil {
		return repo.fail(scope, "prepare "+op, err)
	}
	defer stmt.Close()

	if err = scan(ctx, stmt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return err
		}

		return repo.fail(scope, op, err)
	}

	return nil
}

func (repo *Repository[T]) where(filter dto.FilterGroup) (string, map[string]any) {
	where, args := filter.GetWhereClause()
	if where == "" {
		return "", map[string]any{}
	}

	return " WHERE " + where, args
}

// from is the table with its joins, shared by every read.
func (repo *Repository[T]) from() string {
	if repo.join == "" {
		return repo.table
	}

	return repo.table + " " + repo.join
}

func (repo *Repository[T]) selectList(only ...string) string {
	exprs := make([]string, 0, len(repo.columns))

	for _, col := range repo.columns {
		if len(only) > 0 && !slices.Contains(only, col.name) {
			continue
		}

		exprs = append(exprs, col.selectExpr())
	}

	return strings.Join(exprs, ", ")
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	return repo.exec(ctx, repo.db.Write, "insert", repo.insertQuery, model)
}

func (repo *Repository[T]) InsertTx(ctx context.Context, sqltx *sqlx.Tx, model T) error {
	return repo.exec(ctx, sqltx, "insert", repo.insertQuery, model)
}

func (repo *Repository[T]) exist(ctx context.Context, run runner, filter dto.FilterGroup) (bool, error) {
	where, args := repo.where(filter)
	if where == "" {
		return false, errRequiredFilter
	}

	var found bool

	err := repo.query(ctx, run, "check", "SELECT EXISTS(SELECT 1 FROM "+repo.table+where+")",
		func(ctx context.Context, stmt *sqlx.NamedStmt) error {
			return stmt.GetContext(ctx, &found, args)
		})

	return found, err
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	return repo.exist(ctx, repo.db.Read, filter)
}

func (repo *Repository[T]) ExistTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup) (bool, error) {
	return repo.exist(ctx, sqltx, filter)
}

func (repo *Repository[T]) get(ctx context.Context, run runner, filter dto.FilterGroup, columns ...string) (T, error) {
	where, args := repo.where(filter)
	query := fmt.Sprintf("SELECT %s FROM %s%s LIMIT 1", repo.selectList(columns...), repo.from(), where)

	var model T

	err := repo.query(ctx, run, "get", query, func(ctx context.Context, stmt *sqlx.NamedStmt) error {
		return stmt.GetContext(ctx, &model, args)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return model, nil
	}

	return model, err
}

// Get returns the zero value of T when no row matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	return repo.get(ctx, repo.db.Read, filter, columns...)
}

// GetTx reads through the transaction so uncommitted writes are visible.
func (repo *Repository[T]) GetTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup, columns ...string) (T, error) {
	return repo.get(ctx, sqltx, filter, columns...)
}

// GetAll lists matching rows. The primary key breaks ties so equal sort
// values keep a stable order between calls.
func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	where, args := repo.where(filter)
	query := fmt.Sprintf("SELECT %s FROM %s%s%s", repo.selectList(columns...), repo.from(), where, repo.orderBy(params))

	models := []T{}

	err := repo.query(ctx, repo.db.Read, "list", query, func(ctx context.Context, stmt *sqlx.NamedStmt) error {
		return stmt.SelectContext(ctx, &models, args)
	})

	return models, err
}

func (repo *Repository[T]) orderBy(params dto.QueryParams) string {
	primary := repo.table + "." + repo.primaryColumn

	if params.SortBy == "" {
		return " ORDER BY " + primary
	}

	sortBy := params.SortBy
	if !strings.Contains(sortBy, ".") {
		sortBy = repo.table + "." + sortBy
	}

	dir := params.SortDir
	if dir == "" {
		dir = dto.SortDirAsc
	}

	return fmt.Sprintf(" ORDER BY %s %s, %s %s", sortBy, dir, primary, dir)
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	where, args := repo.where(filter)
	query := fmt.Sprintf("SELECT COUNT(%s.%s) FROM %s%s", repo.table, repo.primaryColumn, repo.from(), where)

	var count int

	err := repo.query(ctx, repo.db.Read, "count", query, func(ctx context.Context, stmt *sqlx.NamedStmt) error {
		return stmt.GetContext(ctx, &count, args)
	})

	return count, err
}

func (repo *Repository[T]) delete(ctx context.Context, run runner, filter dto.FilterGroup) error {
	where, args := repo.where(filter)
	if where == "" {
		return errRequiredFilter
	}

	return repo.exec(ctx, run, "delete", "DELETE FROM "+repo.table+where, args)
}

func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	return repo.delete(ctx, repo.db.Write, filter)
}

func (repo *Repository[T]) DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup) error {
	return repo.delete(ctx, sqltx, filter)
}

// update sets the columns in changes. Filter argument names must not collide
// with column names since both share one argument map.
func (repo *Repository[T]) update(ctx context.Context, run runner, changes map[string]any, filter dto.FilterGroup) error {
	if len(changes) == 0 {
		return errEmptyUpdate
	}

	where, args := repo.where(filter)
	if where == "" {
		return errRequiredFilter
	}

	assignments := make([]string, 0, len(changes))
	for _, col := range slices.Sorted(maps.Keys(changes)) {
		assignments = append(assignments, col+" = :"+col)
	}

	maps.Copy(args, changes)

	query := fmt.Sprintf("UPDATE %s SET %s%s", repo.table, strings.Join(assignments, ", "), where)

	return repo.exec(ctx, run, "update", query, args)
}

func (repo *Repository[T]) Update(ctx context.Context, changes map[string]any, filter dto.FilterGroup) error {
	return repo.update(ctx, repo.db.Write, changes, filter)
}

func (repo *Repository[T]) UpdateTx(ctx context.Context, sqltx *sqlx.Tx, changes map[string]any, filter dto.FilterGroup) error {
	return repo.update(ctx, sqltx, changes, filter)
}

// collectColumns walks the db tags of t, descending into embedded structs. A
// column tag reads a differently named column of a joined table under the db
// tag as alias.
func collectColumns(table string, t reflect.Type) []column {
	columns := []column{}

	for i := range t.NumField() {
		field := t.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			columns = append(columns, collectColumns(table, field.Type)...)

			continue
		}

		dbTag := field.Tag.Get("db")
		if dbTag == "" || dbTag == "-" {
			continue
		}

		col := column{name: dbTag, table: table}

		if foreign := field.Tag.Get("table"); foreign != "" {
			col.table = foreign
		}

		if name := field.Tag.Get("column"); name != "" {
			col.name, col.alias = name, dbTag
		}

		columns = append(columns, col)
	}

	return columns
}

func buildInsertQuery(table string, columns []column) string {
	names := []string{}
	placeholders := []string{}

	for _, col := range columns {
		if col.table != table || col.alias != "" {
			continue
		}

		names = append(names, col.name)
		placeholders = append(placeholders, ":"+col.name)
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(names, ", "), strings.Join(placeholders, ", "))
}
